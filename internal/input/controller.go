// Package input reconciles keyboard entry and live speech transcripts into
// the single editable buffer behind the chat input field.
package input

import (
	"strings"
	"sync"

	"github.com/voicedesk/voicedesk/internal/model/speech"
)

// Controller owns the shared input buffer. Typed edits and recognition
// events both write through it; whichever arrives last wins the whole
// buffer, never a concatenation with prior content.
type Controller struct {
	mu       sync.RWMutex
	value    string
	onChange func(string)
}

// NewController returns an empty input buffer.
func NewController() *Controller {
	return &Controller{}
}

// SetOnChange registers a callback invoked with the new value after every
// buffer change. Used to echo the live transcript back to the input field.
func (c *Controller) SetOnChange(fn func(string)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetTyped replaces the buffer with text entered on the keyboard.
func (c *Controller) SetTyped(text string) {
	c.set(text)
}

// ApplyRecognition folds a recognition event into the buffer. Final
// fragments from the event's new-results range are concatenated; when none
// are final the interim fragments are used instead. The result replaces the
// buffer wholesale, so a session yields one evolving value.
func (c *Controller) ApplyRecognition(ev speech.ResultEvent) {
	var finalText, interimText strings.Builder
	for _, result := range ev.NewResults() {
		if result.IsFinal {
			finalText.WriteString(result.Transcript())
		} else {
			interimText.WriteString(result.Transcript())
		}
	}

	if finalText.Len() > 0 {
		c.set(finalText.String())
		return
	}
	c.set(interimText.String())
}

// Clear empties the buffer.
func (c *Controller) Clear() {
	c.set("")
}

// Value returns the current buffer content.
func (c *Controller) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Controller) set(text string) {
	c.mu.Lock()
	c.value = text
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(text)
	}
}
