package chatbot

// Role identifies the author of a chat message.
type Role string

// Message roles. These values appear verbatim on the wire.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. Messages are immutable once
// appended to a transcript; transcript order is conversational order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return Errorf(EINVALID, "message role must be user or assistant")
	}
	if m.Content == "" {
		return Errorf(EINVALID, "message content required")
	}
	return nil
}
