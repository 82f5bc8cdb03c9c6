package domain

// Fixed user-facing strings. The bot renders these verbatim and the
// backfill worker keys off MsgSummaryUnavailable, so they are contract,
// not cosmetics.
const (
	MsgNoText             = "No text found."
	MsgSummaryUnavailable = "Summary unavailable."
	MsgVoiceFileNotFound  = "Voice file not found."
	MsgTranscribeError    = "Error transcribing audio."
	MsgNoNotes            = "No notes found. Upload a document or send me some text first."
)
