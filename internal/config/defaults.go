package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:              "info",
			MaxConcurrentHandlers: 5,
		},
		Telegram: TelegramConfig{
			Token:       "${TELEGRAM_BOT_TOKEN}",
			ParseMode:   "Markdown",
			PollTimeout: 30,
		},
		Gemini: GeminiConfig{
			APIKey:     "${GEMINI_API_KEY}",
			TextModel:  "gemini-2.0-flash-exp",
			ImageModel: "gemini-2.0-flash-preview-image-generation",
		},
		Speech: SpeechConfig{
			APIKey:     "${GOOGLE_SPEECH_API_KEY}",
			Language:   "ar-SA",
			SampleRate: 16000,
			FFmpegPath: "ffmpeg",
		},
	}
}
