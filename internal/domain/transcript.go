package domain

// TranscriptStatus distinguishes the three transcription outcomes.
// Unintelligible audio is an expected result, not an error.
type TranscriptStatus int

const (
	Recognized TranscriptStatus = iota
	Unintelligible
	BackendUnavailable
)

// Transcription is the outcome of one speech-to-text call.
// Text is set only when Status == Recognized.
type Transcription struct {
	Status TranscriptStatus
	Text   string
}
