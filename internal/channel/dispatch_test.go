package channel

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"geminigram/internal/domain"
)

type sentText struct {
	chatID   int64
	text     string
	markdown bool
}

type sentPhoto struct {
	chatID  int64
	data    []byte
	caption string
}

type fakeSender struct {
	texts  []sentText
	photos []sentPhoto
}

func (f *fakeSender) SendText(chatID int64, text string, markdown bool) error {
	f.texts = append(f.texts, sentText{chatID, text, markdown})
	return nil
}

func (f *fakeSender) SendPhoto(chatID int64, data []byte, caption string) error {
	f.photos = append(f.photos, sentPhoto{chatID, data, caption})
	return nil
}

func testDispatcher() (*Dispatcher, *fakeSender) {
	sender := &fakeSender{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(sender, logger), sender
}

func TestDispatch_ImageWinsOverText(t *testing.T) {
	d, sender := testDispatcher()

	res := &domain.GenerationResult{
		Text: "also some text",
		Inline: []domain.InlinePart{
			{MIME: "image/png", Data: []byte{1, 2, 3}},
		},
	}
	d.Dispatch(7, res, DispatchOpts{Caption: "a red car", Fallback: "fail"})

	if len(sender.photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(sender.photos))
	}
	if len(sender.texts) != 0 {
		t.Fatalf("expected no text messages, got %d", len(sender.texts))
	}
	if sender.photos[0].caption != "a red car" {
		t.Fatalf("caption = %q", sender.photos[0].caption)
	}
}

func TestDispatch_FirstImagePartWins(t *testing.T) {
	d, sender := testDispatcher()

	res := &domain.GenerationResult{
		Inline: []domain.InlinePart{
			{MIME: "audio/ogg", Data: []byte{9}},
			{MIME: "image/png", Data: []byte{1}},
			{MIME: "image/jpeg", Data: []byte{2}},
		},
	}
	d.Dispatch(7, res, DispatchOpts{Fallback: "fail"})

	if len(sender.photos) != 1 {
		t.Fatalf("expected exactly 1 photo, got %d", len(sender.photos))
	}
	if sender.photos[0].data[0] != 1 {
		t.Fatal("expected the first image part, not a later one")
	}
}

func TestDispatch_TextChunkedInOrder(t *testing.T) {
	d, sender := testDispatcher()

	text := strings.Repeat("b", maxMessageLen*2+5)
	d.Dispatch(7, &domain.GenerationResult{Text: text}, DispatchOpts{Fallback: "fail"})

	if len(sender.texts) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(sender.texts))
	}
	var got strings.Builder
	for _, m := range sender.texts {
		got.WriteString(m.text)
	}
	if got.String() != text {
		t.Fatal("concatenated messages do not reproduce the text")
	}
}

func TestDispatch_TextFormatApplied(t *testing.T) {
	d, sender := testDispatcher()

	d.Dispatch(7, &domain.GenerationResult{Text: "hi"}, DispatchOpts{
		TextFmt:  "prefix: %s",
		Markdown: true,
		Fallback: "fail",
	})

	if len(sender.texts) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.texts))
	}
	if sender.texts[0].text != "prefix: hi" {
		t.Fatalf("text = %q", sender.texts[0].text)
	}
	if !sender.texts[0].markdown {
		t.Fatal("expected markdown parse mode")
	}
}

func TestDispatch_EmptyResultSendsFallbackOnce(t *testing.T) {
	d, sender := testDispatcher()

	d.Dispatch(7, &domain.GenerationResult{}, DispatchOpts{Fallback: "nothing came back", ErrorMsg: "boom"})

	if len(sender.texts) != 1 {
		t.Fatalf("expected exactly 1 message, got %d", len(sender.texts))
	}
	if sender.texts[0].text != "nothing came back" {
		t.Fatalf("text = %q", sender.texts[0].text)
	}
	if sender.texts[0].markdown {
		t.Fatal("failure notices are plain text")
	}
}

func TestDispatch_NilResultSendsErrorMessage(t *testing.T) {
	d, sender := testDispatcher()

	d.Dispatch(7, nil, DispatchOpts{Fallback: "nothing came back", ErrorMsg: "backend failed"})

	if len(sender.texts) != 1 {
		t.Fatalf("expected exactly 1 message, got %d", len(sender.texts))
	}
	if sender.texts[0].text != "backend failed" {
		t.Fatalf("text = %q", sender.texts[0].text)
	}
}
