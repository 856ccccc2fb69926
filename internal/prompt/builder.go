// Package prompt assembles generation requests from incoming messages.
package prompt

import (
	"strings"

	"geminigram/internal/domain"
)

// Kind-specific default prompts, used only when the message carries no
// caption. Any caption text, however short, replaces the default.
const (
	defaultPhotoPrompt = "صف هذه الصورة بالتفصيل واشرح ما تراه فيها"
	defaultVideoPrompt = "صف محتوى هذا الفيديو"
)

// Build assembles the model input for one message. Text and voice requests
// carry text only; photo and video requests carry the attachment bytes
// inline next to the prompt.
func Build(kind domain.Kind, caption string, media *domain.MediaPart) domain.GenerationRequest {
	text := caption
	if text == "" {
		switch kind {
		case domain.KindPhoto:
			text = defaultPhotoPrompt
		case domain.KindVideo:
			text = defaultVideoPrompt
		}
	}

	req := domain.GenerationRequest{Prompt: text}
	if kind == domain.KindPhoto || kind == domain.KindVideo {
		req.Media = media
	}
	return req
}

// Imagine joins the /imagine command arguments into a single prompt.
// An empty result means the user gave no description.
func Imagine(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
