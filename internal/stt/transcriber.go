// Package stt turns compressed voice messages into text: decode to a
// waveform via ffmpeg, then recognize via the Google Speech-to-Text REST API.
package stt

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"geminigram/internal/domain"
)

// Config configures a Transcriber.
type Config struct {
	APIKey     string
	Language   string // BCP-47, e.g. "ar-SA"
	SampleRate int
	Endpoint   string     // recognition endpoint override, default Google Speech v1
	TempDir    string     // scratch dir for audio temp files, empty = OS default
	Transcoder Transcoder // default: FFmpeg
	Logger     *slog.Logger
}

// Transcriber implements domain.Transcriber. Safe for concurrent use: each
// call works on its own pair of temp files and shares only the HTTP client.
type Transcriber struct {
	apiKey     string
	language   string
	sampleRate int
	endpoint   string
	tempDir    string
	transcoder Transcoder
	client     *http.Client
	logger     *slog.Logger
}

func New(cfg Config) *Transcriber {
	if cfg.Language == "" {
		cfg.Language = "ar-SA"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultRecognizeEndpoint
	}
	if cfg.Transcoder == nil {
		cfg.Transcoder = FFmpeg{SampleRate: cfg.SampleRate}
	}
	return &Transcriber{
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		endpoint:   cfg.Endpoint,
		tempDir:    cfg.TempDir,
		transcoder: cfg.Transcoder,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Transcribe persists the compressed audio to a scoped temp file, decodes it
// to a second scoped temp file and submits the waveform for recognition.
// Both temp files are removed before returning, on every path.
func (t *Transcriber) Transcribe(ctx context.Context, ogg []byte) (domain.Transcription, error) {
	oggFile, err := os.CreateTemp(t.tempDir, "voice-*.ogg")
	if err != nil {
		return domain.Transcription{}, fmt.Errorf("create audio temp file: %w", err)
	}
	oggPath := oggFile.Name()
	defer os.Remove(oggPath)

	if _, err := oggFile.Write(ogg); err != nil {
		oggFile.Close()
		return domain.Transcription{}, fmt.Errorf("write audio temp file: %w", err)
	}
	if err := oggFile.Close(); err != nil {
		return domain.Transcription{}, fmt.Errorf("close audio temp file: %w", err)
	}

	wavFile, err := os.CreateTemp(t.tempDir, "voice-*.wav")
	if err != nil {
		return domain.Transcription{}, fmt.Errorf("create waveform temp file: %w", err)
	}
	wavPath := wavFile.Name()
	wavFile.Close()
	defer os.Remove(wavPath)

	if err := t.transcoder.ToWAV(ctx, oggPath, wavPath); err != nil {
		return domain.Transcription{}, fmt.Errorf("decode voice audio: %w", err)
	}

	wav, err := os.ReadFile(wavPath)
	if err != nil {
		return domain.Transcription{}, fmt.Errorf("read decoded waveform: %w", err)
	}

	tr := t.recognize(ctx, wav)
	if tr.Status == domain.Recognized {
		t.logger.Info("voice transcribed", "text_len", len(tr.Text))
	}
	return tr, nil
}
