package channel

import (
	"fmt"
	"log/slog"

	"geminigram/internal/domain"
)

// Sender delivers outgoing messages to one chat. *Telegram implements it;
// tests substitute a fake.
type Sender interface {
	SendText(chatID int64, text string, markdown bool) error
	SendPhoto(chatID int64, data []byte, caption string) error
}

// DispatchOpts scopes a dispatch to one feature: how to wrap the model
// text, what to caption a generated photo with, and which failure wording
// to use.
type DispatchOpts struct {
	Caption  string // photo caption when the result carries an image
	TextFmt  string // Sprintf template with one %s for text replies; "" = verbatim
	Markdown bool   // parse mode for text replies
	Fallback string // sent when the result has neither text nor image
	ErrorMsg string // sent when the result is nil (backend call failed)
}

// Dispatcher maps a generation result to outgoing chat messages.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Dispatch applies the response policy: a nil result means the backend call
// itself failed; otherwise the first inline image wins over any text; text
// longer than the platform limit goes out as ordered 4096-character chunks;
// an empty result yields exactly one feature-scoped failure message.
// Photo responses are never chunked.
func (d *Dispatcher) Dispatch(chatID int64, res *domain.GenerationResult, opts DispatchOpts) {
	if res == nil {
		d.sendPlain(chatID, opts.ErrorMsg)
		return
	}

	if img := res.FirstImage(); img != nil {
		if err := d.sender.SendPhoto(chatID, img.Data, opts.Caption); err != nil {
			d.logger.Error("photo reply failed", "chat_id", chatID, "err", err)
		}
		return
	}

	if res.Text != "" {
		text := res.Text
		if opts.TextFmt != "" {
			text = fmt.Sprintf(opts.TextFmt, text)
		}
		for _, chunk := range chunkText(text, maxMessageLen) {
			if err := d.sender.SendText(chatID, chunk, opts.Markdown); err != nil {
				d.logger.Error("text reply failed", "chat_id", chatID, "err", err)
				return
			}
		}
		return
	}

	d.sendPlain(chatID, opts.Fallback)
}

func (d *Dispatcher) sendPlain(chatID int64, text string) {
	if text == "" {
		return
	}
	if err := d.sender.SendText(chatID, text, false); err != nil {
		d.logger.Error("failure reply failed", "chat_id", chatID, "err", err)
	}
}
