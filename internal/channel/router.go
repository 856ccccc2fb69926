package channel

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"geminigram/internal/domain"
)

// classify maps a non-command Telegram message to exactly one message kind.
// The second return is false for update types the bot ignores (stickers,
// documents, edits and so on); those get no reply at all.
func classify(msg *tgbotapi.Message) (domain.Kind, bool) {
	switch {
	case len(msg.Photo) > 0:
		return domain.KindPhoto, true
	case msg.Voice != nil || msg.Audio != nil:
		return domain.KindVoice, true
	case msg.Video != nil:
		return domain.KindVideo, true
	case msg.Text != "" && !msg.IsCommand():
		return domain.KindText, true
	}
	return "", false
}

// toIncoming builds the request-scoped message view, resolving which
// attachment reference belongs to the triggering update.
func toIncoming(msg *tgbotapi.Message, kind domain.Kind) *domain.IncomingMessage {
	in := &domain.IncomingMessage{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Kind:      kind,
		Text:      msg.Text,
		Caption:   msg.Caption,
	}

	switch kind {
	case domain.KindPhoto:
		// Telegram lists sizes ascending; take the largest rendition.
		in.Attachment = &domain.AttachmentRef{
			FileID: msg.Photo[len(msg.Photo)-1].FileID,
			MIME:   "image/jpeg",
		}
	case domain.KindVoice:
		if msg.Voice != nil {
			in.Attachment = &domain.AttachmentRef{FileID: msg.Voice.FileID, MIME: msg.Voice.MimeType}
		} else if msg.Audio != nil {
			in.Attachment = &domain.AttachmentRef{FileID: msg.Audio.FileID, MIME: msg.Audio.MimeType}
		}
	case domain.KindVideo:
		mime := msg.Video.MimeType
		if mime == "" {
			mime = "video/mp4"
		}
		in.Attachment = &domain.AttachmentRef{FileID: msg.Video.FileID, MIME: mime}
	}
	return in
}
