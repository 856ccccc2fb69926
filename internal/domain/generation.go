package domain

import (
	"context"
	"strings"
)

// MediaPart is binary content sent inline with a prompt.
type MediaPart struct {
	MIME string
	Data []byte
}

// GenerationRequest is the model input for one generation call.
// Built fresh per request and never mutated after it is handed off.
type GenerationRequest struct {
	Prompt          string
	Media           *MediaPart // nil for text-only requests
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// InlinePart is a chunk of binary data embedded in a generation result.
type InlinePart struct {
	MIME string
	Data []byte
}

// GenerationResult is what the model returned: text, inline binary parts,
// or neither. Consumed exactly once by the response dispatcher.
type GenerationResult struct {
	Text   string
	Inline []InlinePart
}

// FirstImage returns the first inline part with an image MIME type.
// Any further image parts are deliberately ignored.
func (r *GenerationResult) FirstImage() *InlinePart {
	if r == nil {
		return nil
	}
	for i := range r.Inline {
		if strings.HasPrefix(r.Inline[i].MIME, "image/") && len(r.Inline[i].Data) > 0 {
			return &r.Inline[i]
		}
	}
	return nil
}

// Empty reports whether the result carries neither text nor an image.
func (r *GenerationResult) Empty() bool {
	return r == nil || (r.Text == "" && r.FirstImage() == nil)
}

// Generator invokes the generation backend. Implementations never leak
// backend errors: a failed call is logged internally and yields nil, which
// callers treat the same as an empty result. Single attempt, no retries.
type Generator interface {
	GenerateText(ctx context.Context, req GenerationRequest) *GenerationResult
	GenerateImage(ctx context.Context, prompt string) *GenerationResult
}

// Fetcher downloads an attachment's bytes from the chat platform.
type Fetcher interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

// Transcriber converts compressed voice audio into text. The returned
// Transcription covers the recognition outcomes (recognized, unintelligible,
// backend unavailable); the error covers local failures such as temp-file or
// decode problems.
type Transcriber interface {
	Transcribe(ctx context.Context, ogg []byte) (Transcription, error)
}
