package domain

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Fallback is shown whenever a comfort message could not be generated.
const Fallback = "เรารับฟังคุณอยู่ คุณไม่ได้อยู่คนเดียว และความรู้สึกของคุณมีความหมาย 💙✨"

// FallbackUnconfigured is returned when the provider key is missing.
const FallbackUnconfigured = "เรารับฟังคุณอยู่ คุณไม่ได้อยู่คนเดียวนะ 💙✨"

// SubmissionRequest is the body of POST /api/comfort.
type SubmissionRequest struct {
	Message string `json:"message"`
}

// ComfortReply always carries a usable ComfortMessage, even when Error is set.
type ComfortReply struct {
	Error          string `json:"error,omitempty"`
	ComfortMessage string `json:"comfortMessage,omitempty"`
}
