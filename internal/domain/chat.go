package domain

// Chat roles used by the assistant transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the assistant transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
