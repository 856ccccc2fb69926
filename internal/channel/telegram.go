// Package channel runs the Telegram side of the bot: the polling loop, the
// update router and the per-kind message handlers.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"geminigram/internal/domain"
	"geminigram/internal/prompt"
	"geminigram/internal/reply"
)

const defaultConcurrency = 5

// Telegram drives the update loop and owns the shared bot API handle.
// All fields are set at construction and never mutated per request.
type Telegram struct {
	bot         *tgbotapi.BotAPI
	parseMode   string
	pollTimeout int
	concurrency int

	fetcher     domain.Fetcher
	transcriber domain.Transcriber
	generator   domain.Generator
	replies     *reply.Catalog
	dispatcher  *Dispatcher
	sender      Sender // self, swapped out in tests
	logger      *slog.Logger
}

type TelegramConfig struct {
	Bot         *tgbotapi.BotAPI
	ParseMode   string
	PollTimeout int
	Concurrency int // max updates handled in parallel
	Fetcher     domain.Fetcher
	Transcriber domain.Transcriber
	Generator   domain.Generator
	Replies     *reply.Catalog
	Logger      *slog.Logger
}

func NewTelegram(cfg TelegramConfig) *Telegram {
	if cfg.ParseMode == "" {
		cfg.ParseMode = tgbotapi.ModeMarkdown
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	t := &Telegram{
		bot:         cfg.Bot,
		parseMode:   cfg.ParseMode,
		pollTimeout: cfg.PollTimeout,
		concurrency: cfg.Concurrency,
		fetcher:     cfg.Fetcher,
		transcriber: cfg.Transcriber,
		generator:   cfg.Generator,
		replies:     cfg.Replies,
		logger:      cfg.Logger,
	}
	t.sender = t
	t.dispatcher = NewDispatcher(t.sender, cfg.Logger)
	return t
}

// Start polls for updates until ctx is cancelled. Each update is handled on
// its own goroutine, bounded by a semaphore so a burst of slow model calls
// cannot pile up unbounded work.
func (t *Telegram) Start(ctx context.Context) error {
	t.logger.Info("telegram bot connected",
		"username", t.bot.Self.UserName,
		"id", t.bot.Self.ID,
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout
	updates := t.bot.GetUpdatesChan(u)

	t.logger.Info("telegram polling started", "concurrency", t.concurrency)

	sem := make(chan struct{}, t.concurrency)
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("telegram channel stopping")
			t.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			sem <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-sem }()
				defer func() {
					// One misbehaving update must not take the process down.
					if r := recover(); r != nil {
						t.logger.Error("panic in update handler", "panic", r)
					}
				}()
				t.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate routes one update to exactly one handler. Anything the
// router does not recognize is dropped without a reply.
func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			t.sendText(msg.Chat.ID, t.replies.Welcome, true)
		case "help":
			t.sendText(msg.Chat.ID, t.replies.Help, true)
		case "imagine":
			t.handleImagine(ctx, msg)
		}
		// Unknown commands are ignored, matching the silent treatment of
		// unrecognized update types.
		return
	}

	kind, ok := classify(msg)
	if !ok {
		return
	}
	in := toIncoming(msg, kind)

	t.logger.Info("message received", "chat_id", in.ChatID, "kind", string(kind))

	switch kind {
	case domain.KindText:
		t.handleText(ctx, in)
	case domain.KindPhoto:
		t.handlePhoto(ctx, in)
	case domain.KindVoice:
		t.handleVoice(ctx, in)
	case domain.KindVideo:
		t.handleVideo(ctx, in)
	}
}

func (t *Telegram) handleImagine(ctx context.Context, msg *tgbotapi.Message) {
	desc := prompt.Imagine(strings.Fields(msg.CommandArguments()))
	if desc == "" {
		t.sendText(msg.Chat.ID, t.replies.ImagineUsage, true)
		return
	}

	t.sendText(msg.Chat.ID, t.replies.ImagineWorking, false)

	res := t.generator.GenerateImage(ctx, desc)
	t.dispatcher.Dispatch(msg.Chat.ID, res, DispatchOpts{
		Caption:  fmt.Sprintf(t.replies.ImageCaptionFmt, desc),
		TextFmt:  t.replies.ImageTextFmt,
		Fallback: t.replies.ImagineFailed,
		ErrorMsg: t.replies.ImagineError,
	})
}

func (t *Telegram) handleText(ctx context.Context, in *domain.IncomingMessage) {
	t.sendText(in.ChatID, t.replies.Thinking, false)

	req := prompt.Build(in.Kind, in.Text, nil)
	res := t.generator.GenerateText(ctx, req)
	t.dispatcher.Dispatch(in.ChatID, res, DispatchOpts{
		Fallback: t.replies.TextFailed,
		ErrorMsg: t.replies.TextError,
	})
}

func (t *Telegram) handlePhoto(ctx context.Context, in *domain.IncomingMessage) {
	t.sendText(in.ChatID, t.replies.AnalyzingPhoto, false)

	data, err := t.fetcher.Fetch(ctx, in.Attachment.FileID)
	if err != nil {
		t.logger.Error("photo download failed", "chat_id", in.ChatID, "err", err)
		t.sendText(in.ChatID, t.replies.PhotoError, false)
		return
	}

	req := prompt.Build(in.Kind, in.Caption, &domain.MediaPart{MIME: in.Attachment.MIME, Data: data})
	res := t.generator.GenerateText(ctx, req)
	t.dispatcher.Dispatch(in.ChatID, res, DispatchOpts{
		TextFmt:  t.replies.PhotoResultFmt,
		Markdown: true,
		Fallback: t.replies.PhotoFailed,
		ErrorMsg: t.replies.PhotoError,
	})
}

func (t *Telegram) handleVoice(ctx context.Context, in *domain.IncomingMessage) {
	t.sendText(in.ChatID, t.replies.AnalyzingVoice, false)

	data, err := t.fetcher.Fetch(ctx, in.Attachment.FileID)
	if err != nil {
		t.logger.Error("voice download failed", "chat_id", in.ChatID, "err", err)
		t.sendText(in.ChatID, t.replies.VoiceError, false)
		return
	}

	tr, err := t.transcriber.Transcribe(ctx, data)
	if err != nil {
		t.logger.Error("voice processing failed", "chat_id", in.ChatID, "err", err)
		t.sendText(in.ChatID, t.replies.VoiceError, false)
		return
	}

	switch tr.Status {
	case domain.Unintelligible:
		t.sendText(in.ChatID, t.replies.VoiceUnintelligible, false)
		return
	case domain.BackendUnavailable:
		t.sendText(in.ChatID, t.replies.VoiceServiceError, false)
		return
	}

	// Forward the transcript verbatim, then answer it.
	t.sendText(in.ChatID, fmt.Sprintf(t.replies.VoiceTranscriptFmt, tr.Text), false)

	req := prompt.Build(in.Kind, tr.Text, nil)
	res := t.generator.GenerateText(ctx, req)
	t.dispatcher.Dispatch(in.ChatID, res, DispatchOpts{
		TextFmt:  t.replies.VoiceReplyFmt,
		Fallback: t.replies.VoiceError,
		ErrorMsg: t.replies.VoiceError,
	})
}

func (t *Telegram) handleVideo(ctx context.Context, in *domain.IncomingMessage) {
	t.sendText(in.ChatID, t.replies.AnalyzingVideo, false)

	data, err := t.fetcher.Fetch(ctx, in.Attachment.FileID)
	if err != nil {
		t.logger.Error("video download failed", "chat_id", in.ChatID, "err", err)
		t.sendText(in.ChatID, t.replies.VideoError, false)
		return
	}

	req := prompt.Build(in.Kind, in.Caption, &domain.MediaPart{MIME: in.Attachment.MIME, Data: data})
	res := t.generator.GenerateText(ctx, req)
	t.dispatcher.Dispatch(in.ChatID, res, DispatchOpts{
		TextFmt:  t.replies.VideoResultFmt,
		Markdown: true,
		Fallback: t.replies.VideoFailed,
		ErrorMsg: t.replies.VideoError,
	})
}

// SendText sends one message. Markdown messages that fail to parse are
// retried once as plain text so a malformed model reply still reaches the
// user.
func (t *Telegram) SendText(chatID int64, text string, markdown bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = t.parseMode
	}
	_, err := t.bot.Send(msg)
	if err != nil && markdown && strings.Contains(err.Error(), "can't parse entities") {
		t.logger.Warn("markdown parse error, retrying as plain text", "err", err)
		plain := tgbotapi.NewMessage(chatID, text)
		_, err = t.bot.Send(plain)
	}
	return err
}

// SendPhoto sends image bytes as a photo message with a Markdown caption.
func (t *Telegram) SendPhoto(chatID int64, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "generated.png", Bytes: data})
	photo.Caption = caption
	photo.ParseMode = t.parseMode
	_, err := t.bot.Send(photo)
	return err
}

// sendText is the fire-and-forget variant used for notices and error
// replies; failures are logged and swallowed.
func (t *Telegram) sendText(chatID int64, text string, markdown bool) {
	if err := t.sender.SendText(chatID, text, markdown); err != nil {
		t.logger.Error("telegram send failed", "chat_id", chatID, "err", err)
	}
}
