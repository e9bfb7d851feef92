package domain

// MessageLevel classifies a one-line status message.
type MessageLevel string

const (
	MessageInfo    MessageLevel = "info"
	MessageSuccess MessageLevel = "success"
	MessageWarning MessageLevel = "warning"
	MessageDanger  MessageLevel = "danger"
)

// Message is a user-facing status line.
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}
