package speech

import (
	"log"
	"sync"

	"github.com/voicedesk/voicedesk/internal/input"
	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
)

// Capture drives a Recognizer through the at-most-one-session contract and
// folds its result events into the shared input buffer. All platform
// failures end at this adapter: they flip the listening flag and get logged,
// never returned to the caller.
type Capture struct {
	mu        sync.Mutex
	engine    Recognizer
	buffer    *input.Controller
	listening bool
	closed    bool
	onState   func(listening bool)
}

// NewCapture wraps the recognizer capability. A nil engine means the
// platform has no capture capability; every Start then degrades to a logged
// no-op.
func NewCapture(engine Recognizer, buffer *input.Controller) *Capture {
	return &Capture{
		engine: engine,
		buffer: buffer,
	}
}

// SetOnState registers a callback fired whenever the listening flag flips.
func (c *Capture) SetOnState(fn func(listening bool)) {
	c.mu.Lock()
	c.onState = fn
	c.mu.Unlock()
}

// StartListening begins a capture session. Missing capability, a closed
// adapter, or an already-active session all leave state unchanged. On
// success the shared input buffer is cleared before the first result lands.
func (c *Capture) StartListening() {
	c.mu.Lock()
	if c.engine == nil || c.closed {
		c.mu.Unlock()
		log.Println("[capture] speech recognition unavailable, ignoring start")
		return
	}
	if c.listening {
		c.mu.Unlock()
		return
	}
	c.listening = true
	fn := c.onState
	c.mu.Unlock()

	c.buffer.Clear()
	if err := c.engine.Start(); err != nil {
		log.Printf("[capture] failed to start recognition: %v", err)
		c.setListening(false)
		return
	}
	if fn != nil {
		fn(true)
	}
}

// StopListening requests the engine to end the session. The flag flips here;
// the platform's own end notification arriving later is absorbed by
// HandleEnd, so the flag ends up false exactly once either way.
func (c *Capture) StopListening() {
	c.mu.Lock()
	if c.engine == nil || !c.listening {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.engine.Stop(); err != nil {
		log.Printf("[capture] failed to stop recognition: %v", err)
	}
	c.setListening(false)
}

// Available reports whether the platform capture capability can be used.
func (c *Capture) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine != nil && !c.closed
}

// IsListening reports whether a capture session is active.
func (c *Capture) IsListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// HandleResult folds a platform result event into the input buffer. Events
// arriving after Close or outside a session are dropped.
func (c *Capture) HandleResult(ev speechmodel.ResultEvent) {
	c.mu.Lock()
	ok := c.listening && !c.closed
	c.mu.Unlock()
	if !ok {
		return
	}
	c.buffer.ApplyRecognition(ev)
}

// HandleError ends the session on any platform error. The user may retry.
func (c *Capture) HandleError(err error) {
	log.Printf("[capture] recognition error: %v", err)
	c.setListening(false)
}

// HandleEnd absorbs the platform-initiated end, e.g. a silence timeout.
func (c *Capture) HandleEnd() {
	c.setListening(false)
}

// Close stops any active session and detaches the adapter; no event is
// observed afterwards.
func (c *Capture) Close() {
	c.mu.Lock()
	active := c.listening
	c.closed = true
	engine := c.engine
	c.mu.Unlock()

	if active && engine != nil {
		if err := engine.Stop(); err != nil {
			log.Printf("[capture] stop on close failed: %v", err)
		}
	}
	c.setListening(false)
}

func (c *Capture) setListening(v bool) {
	c.mu.Lock()
	changed := c.listening != v
	c.listening = v
	fn := c.onState
	c.mu.Unlock()

	if changed && fn != nil {
		fn(v)
	}
}
