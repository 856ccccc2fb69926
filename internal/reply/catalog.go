// Package reply holds every user-facing string the bot sends. Keeping them
// in one catalog allows rewording or re-localizing without touching handler
// code: a YAML file may override any subset of the defaults.
package reply

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog maps reply keys to localized message templates.
// Fields ending in *Fmt are fmt.Sprintf templates with one %s verb.
type Catalog struct {
	Welcome string `yaml:"welcome"`
	Help    string `yaml:"help"`

	ImagineUsage    string `yaml:"imagineUsage"`
	ImagineWorking  string `yaml:"imagineWorking"`
	ImageCaptionFmt string `yaml:"imageCaption"`
	ImageTextFmt    string `yaml:"imageText"`
	ImagineFailed   string `yaml:"imagineFailed"`
	ImagineError    string `yaml:"imagineError"`

	Thinking   string `yaml:"thinking"`
	TextFailed string `yaml:"textFailed"`
	TextError  string `yaml:"textError"`

	AnalyzingPhoto string `yaml:"analyzingPhoto"`
	PhotoResultFmt string `yaml:"photoResult"`
	PhotoFailed    string `yaml:"photoFailed"`
	PhotoError     string `yaml:"photoError"`

	AnalyzingVoice      string `yaml:"analyzingVoice"`
	VoiceTranscriptFmt  string `yaml:"voiceTranscript"`
	VoiceReplyFmt       string `yaml:"voiceReply"`
	VoiceUnintelligible string `yaml:"voiceUnintelligible"`
	VoiceServiceError   string `yaml:"voiceServiceError"`
	VoiceError          string `yaml:"voiceError"`

	AnalyzingVideo string `yaml:"analyzingVideo"`
	VideoResultFmt string `yaml:"videoResult"`
	VideoFailed    string `yaml:"videoFailed"`
	VideoError     string `yaml:"videoError"`
}

// Defaults returns the built-in Arabic catalog.
func Defaults() *Catalog {
	return &Catalog{
		Welcome: `🤖 مرحباً بك في البوت الذكي المدعوم بـ Gemini 2.0 Flash!

🎯 **إمكانيات البوت:**
• 💬 محادثة ذكية بالنصوص
• 🖼️ تحليل وفهم الصور
• 🎤 التعامل مع الرسائل الصوتية
• 🎨 توليد الصور بأمر /imagine
• 🎬 تحليل مقاطع الفيديو

📝 **كيفية الاستخدام:**
• أرسل أي نص للمحادثة
• أرسل صورة مع تعليق للتحليل
• أرسل رسالة صوتية للتفاعل
• استخدم /imagine [وصف] لتوليد صورة

🚀 ابدأ المحادثة الآن!`,

		Help: `🆘 **مساعدة البوت**

**الأوامر المتاحة:**
• ` + "`/start`" + ` - بدء التشغيل
• ` + "`/help`" + ` - عرض المساعدة
• ` + "`/imagine [وصف]`" + ` - توليد صورة

**أمثلة لتوليد الصور:**
• ` + "`/imagine قط يلوح للكاميرا`" + `
• ` + "`/imagine منظر طبيعي جميل عند الغروب`" + `
• ` + "`/imagine سيارة رياضية حمراء`" + `

**الميزات:**
• تحليل الصور المرسلة
• تحويل الصوت إلى نص والرد عليه
• محادثة ذكية بالذكاء الاصطناعي`,

		ImagineUsage:    "⚠️ يرجى إدخال وصف للصورة بعد الأمر\n\nمثال: `/imagine قط يلوح للكاميرا`",
		ImagineWorking:  "🎨 جاري توليد الصورة... قد يستغرق الأمر بضع ثوان",
		ImageCaptionFmt: "🎨 **الصورة المولدة:**\n📝 الوصف: %s",
		ImageTextFmt:    "🎨 تم توليد الصورة!\n\n%s",
		ImagineFailed:   "❌ عذراً، لم أتمكن من توليد الصورة. حاول مرة أخرى.",
		ImagineError:    "❌ حدث خطأ أثناء توليد الصورة. حاول مرة أخرى لاحقاً.",

		Thinking:   "🤔 جاري التفكير...",
		TextFailed: "❌ لم أتمكن من فهم الرسالة. حاول مرة أخرى.",
		TextError:  "❌ حدث خطأ أثناء معالجة الرسالة.",

		AnalyzingPhoto: "🖼️ جاري تحليل الصورة...",
		PhotoResultFmt: "🔍 **تحليل الصورة:**\n\n%s",
		PhotoFailed:    "❌ لم أتمكن من تحليل الصورة.",
		PhotoError:     "❌ حدث خطأ أثناء تحليل الصورة.",

		AnalyzingVoice:      "🎤 جاري تحليل الرسالة الصوتية...",
		VoiceTranscriptFmt:  "🎤 **النص المستخرج:**\n%s",
		VoiceReplyFmt:       "🤖 **الرد:**\n%s",
		VoiceUnintelligible: "❌ لم أتمكن من فهم الصوت. حاول التحدث بوضوح أكثر.",
		VoiceServiceError:   "❌ خطأ في خدمة تحويل الصوت إلى نص.",
		VoiceError:          "❌ حدث خطأ أثناء معالجة الرسالة الصوتية.",

		AnalyzingVideo: "🎬 جاري تحليل الفيديو...",
		VideoResultFmt: "🎬 **تحليل الفيديو:**\n\n%s",
		VideoFailed:    "❌ لم أتمكن من تحليل الفيديو.",
		VideoError:     "❌ حدث خطأ أثناء تحليل الفيديو.",
	}
}

// Load returns the defaults with any values from the YAML file at path
// merged over them. An empty path returns the defaults unchanged.
// Keys absent from the file keep their default value.
func Load(path string) (*Catalog, error) {
	cat := Defaults()
	if path == "" {
		return cat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read replies file %s: %w", path, err)
	}
	// Unmarshal over the prefilled struct: absent keys stay at defaults.
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("cannot parse replies file %s: %w", path, err)
	}
	return cat, nil
}
