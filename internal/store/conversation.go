// Package store holds the ordered conversation transcript.
package store

import (
	"sync"

	"github.com/voicedesk/voicedesk/internal/model/chat"
)

// Conversation is the ordered, append-only message sequence backing the
// transcript view. The only in-place mutation is Replace, used to swap a
// loading placeholder for the final bot message.
type Conversation struct {
	mu       sync.RWMutex
	messages []chat.Message
	onMutate func()
}

// NewConversation returns an empty transcript.
func NewConversation() *Conversation {
	return &Conversation{
		messages: make([]chat.Message, 0, 16),
	}
}

// SetOnMutate registers a callback fired after every append or replace.
// The display uses it to scroll to the newest entry. The callback runs
// outside the store lock.
func (c *Conversation) SetOnMutate(fn func()) {
	c.mu.Lock()
	c.onMutate = fn
	c.mu.Unlock()
}

// Append adds a message to the end of the sequence.
func (c *Conversation) Append(msg chat.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	fn := c.onMutate
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Replace substitutes the entry matching id in place, preserving its
// position. An unknown id leaves the sequence unchanged.
func (c *Conversation) Replace(id string, msg chat.Message) bool {
	c.mu.Lock()
	replaced := false
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i] = msg
			replaced = true
			break
		}
	}
	fn := c.onMutate
	c.mu.Unlock()

	if replaced && fn != nil {
		fn()
	}
	return replaced
}

// Messages returns a copy of the transcript in insertion order.
func (c *Conversation) Messages() []chat.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]chat.Message, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Len reports the number of transcript entries.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// PendingPlaceholder returns the current loading placeholder, if any. The
// orchestrator keeps at most one alive at a time.
func (c *Conversation) PendingPlaceholder() (chat.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, msg := range c.messages {
		if msg.IsLoading {
			return msg, true
		}
	}
	return chat.Message{}, false
}
