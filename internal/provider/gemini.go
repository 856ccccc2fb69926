// Package provider wraps the Gemini generation backend.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"geminigram/internal/config"
	"geminigram/internal/domain"
)

// Fixed sampling parameters for image generation.
const (
	imageTemperature     = 0.8
	imageTopP            = 0.95
	imageMaxOutputTokens = 8192
)

// Gemini implements domain.Generator on top of the official genai SDK.
// One client serves both the text and the image model; its configuration is
// fixed at construction and shared read-only across concurrent handlers.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
	logger     *slog.Logger
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		logger:     logger,
	}, nil
}

// GenerateText calls the text-capable model. Backend errors never escape:
// they are logged and the caller sees a nil result, reported to the user as
// a generation failure. Single attempt, no retry.
func (g *Gemini) GenerateText(ctx context.Context, req domain.GenerationRequest) *domain.GenerationResult {
	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.TopP > 0 {
		cfg.TopP = genai.Ptr(req.TopP)
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, contentsFor(req), cfg)
	if err != nil {
		g.logger.Error("text generation failed", "model", g.textModel, "err", err)
		return nil
	}
	return resultFrom(resp)
}

// GenerateImage calls the image-capable model with fixed sampling
// parameters. Same error policy as GenerateText.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) *domain.GenerationResult {
	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(float32(imageTemperature)),
		TopP:               genai.Ptr(float32(imageTopP)),
		MaxOutputTokens:    imageMaxOutputTokens,
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, contents, cfg)
	if err != nil {
		g.logger.Error("image generation failed", "model", g.imageModel, "err", err)
		return nil
	}
	return resultFrom(resp)
}

// contentsFor converts a generation request into genai content, attaching
// inline media next to the prompt text when present.
func contentsFor(req domain.GenerationRequest) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Media != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Media.Data, req.Media.MIME))
	}
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: parts,
	}}
}

// resultFrom flattens the first candidate into a GenerationResult. Text
// parts are concatenated; every inline binary part is carried over so the
// dispatcher can apply its own first-wins policy.
func resultFrom(resp *genai.GenerateContentResponse) *domain.GenerationResult {
	res := &domain.GenerationResult{}
	if resp == nil || len(resp.Candidates) == 0 {
		return res
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return res
	}
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			res.Text += part.Text
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			res.Inline = append(res.Inline, domain.InlinePart{
				MIME: part.InlineData.MIMEType,
				Data: part.InlineData.Data,
			})
		}
	}
	return res
}
