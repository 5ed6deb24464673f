package chat

import "github.com/google/uuid"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// PlaceholderText is the sentinel body shown while a response is pending.
const PlaceholderText = "Thinking"

// Message is a single transcript entry. Messages are append-only; the only
// in-place mutation allowed is replacing a loading placeholder with the
// final bot message.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	IsLoading bool   `json:"isLoading,omitempty"`
}

// NewUserMessage builds a user transcript entry with a fresh id.
func NewUserMessage(text string) Message {
	return Message{
		ID:     "user-" + uuid.NewString(),
		Text:   text,
		Sender: SenderUser,
	}
}

// NewBotMessage builds a finalized bot transcript entry with a fresh id.
func NewBotMessage(text string) Message {
	return Message{
		ID:     "bot-" + uuid.NewString(),
		Text:   text,
		Sender: SenderBot,
	}
}

// NewPlaceholder builds the pending bot entry. Its id is captured by the
// orchestrator at insertion time and used for the later in-place replace.
func NewPlaceholder() Message {
	return Message{
		ID:        "bot-loading-" + uuid.NewString(),
		Text:      PlaceholderText,
		Sender:    SenderBot,
		IsLoading: true,
	}
}
