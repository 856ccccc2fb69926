package provider

import (
	"testing"

	"google.golang.org/genai"

	"geminigram/internal/domain"
)

func TestResultFrom_ConcatenatesTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "first "},
					{Text: "second"},
				},
			},
		}},
	}

	res := resultFrom(resp)
	if res.Text != "first second" {
		t.Fatalf("text = %q", res.Text)
	}
	if len(res.Inline) != 0 {
		t.Fatalf("expected no inline parts, got %d", len(res.Inline))
	}
}

func TestResultFrom_CarriesAllInlineParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "here is your image"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2}}},
					{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{3}}},
				},
			},
		}},
	}

	res := resultFrom(resp)
	if len(res.Inline) != 2 {
		t.Fatalf("expected 2 inline parts, got %d", len(res.Inline))
	}
	if res.Inline[0].MIME != "image/png" {
		t.Fatalf("first part mime = %q", res.Inline[0].MIME)
	}
	if res.Text != "here is your image" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestResultFrom_EmptyResponses(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
	} {
		res := resultFrom(resp)
		if res == nil {
			t.Fatalf("%s: result must be non-nil", name)
		}
		if !res.Empty() {
			t.Fatalf("%s: expected empty result", name)
		}
	}
}

func TestContentsFor_TextOnly(t *testing.T) {
	contents := contentsFor(domain.GenerationRequest{Prompt: "hello"})
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	if len(contents[0].Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(contents[0].Parts))
	}
	if contents[0].Parts[0].Text != "hello" {
		t.Fatalf("text = %q", contents[0].Parts[0].Text)
	}
}

func TestContentsFor_InlineMediaNextToPrompt(t *testing.T) {
	req := domain.GenerationRequest{
		Prompt: "describe this",
		Media:  &domain.MediaPart{MIME: "image/jpeg", Data: []byte{0xFF, 0xD8}},
	}

	contents := contentsFor(req)
	if len(contents[0].Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(contents[0].Parts))
	}
	blob := contents[0].Parts[1].InlineData
	if blob == nil || blob.MIMEType != "image/jpeg" || len(blob.Data) != 2 {
		t.Fatalf("inline data = %+v", blob)
	}
}
