package domain

// Kind classifies an incoming non-command message by its payload type.
type Kind string

const (
	KindText  Kind = "text"
	KindPhoto Kind = "photo"
	KindVoice Kind = "voice"
	KindVideo Kind = "video"
)

// AttachmentRef points at a platform-hosted binary payload. The bytes are
// resolved lazily through a Fetcher; the ref itself carries no data.
type AttachmentRef struct {
	FileID string
	MIME   string
}

// IncomingMessage is the request-scoped view of one Telegram message.
// Nothing about it outlives the handler that processes it.
type IncomingMessage struct {
	ChatID     int64
	MessageID  int
	Kind       Kind
	Text       string // message body for KindText
	Caption    string // media caption, may be empty
	Attachment *AttachmentRef
}
