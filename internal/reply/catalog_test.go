package reply

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaults_NoEmptyStrings(t *testing.T) {
	cat := Defaults()
	v := reflect.ValueOf(*cat)
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).String() == "" {
			t.Errorf("catalog field %s is empty", v.Type().Field(i).Name)
		}
	}
}

func TestDefaults_FormatTemplates(t *testing.T) {
	cat := Defaults()
	for name, tmpl := range map[string]string{
		"ImageCaptionFmt":    cat.ImageCaptionFmt,
		"ImageTextFmt":       cat.ImageTextFmt,
		"PhotoResultFmt":     cat.PhotoResultFmt,
		"VoiceTranscriptFmt": cat.VoiceTranscriptFmt,
		"VoiceReplyFmt":      cat.VoiceReplyFmt,
		"VideoResultFmt":     cat.VideoResultFmt,
	} {
		if strings.Count(tmpl, "%s") != 1 {
			t.Errorf("%s must contain exactly one %%s verb: %q", name, tmpl)
		}
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Thinking != Defaults().Thinking {
		t.Fatal("empty path should return defaults")
	}
}

func TestLoad_OverrideMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "replies.yaml")
	content := "thinking: \"thinking...\"\nimagineUsage: \"usage: /imagine <desc>\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Thinking != "thinking..." {
		t.Fatalf("thinking = %q", cat.Thinking)
	}
	if cat.ImagineUsage != "usage: /imagine <desc>" {
		t.Fatalf("imagineUsage = %q", cat.ImagineUsage)
	}
	// Keys absent from the file keep their defaults.
	if cat.Help != Defaults().Help {
		t.Fatal("help should keep its default")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
