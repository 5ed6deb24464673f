package session

import (
	"errors"
	"sync"

	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
)

// ErrNoClient is returned when a speech command has no attached UI shell to
// carry it out.
var ErrNoClient = errors.New("no ui client attached")

// Bridge is the concrete platform capability: the browser shell owns the
// actual recognition and synthesis engines, and the bridge relays commands
// to it over the active websocket session. Recognition results flow back in
// through the session's read loop, not through the bridge.
type Bridge struct {
	mu   sync.Mutex
	send func(kind string, payload any) error
}

// NewBridge starts detached; commands fail with ErrNoClient until a session
// attaches.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach points the bridge at the current session's writer.
func (b *Bridge) Attach(send func(kind string, payload any) error) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// Detach disconnects the bridge from a closed session.
func (b *Bridge) Detach() {
	b.mu.Lock()
	b.send = nil
	b.mu.Unlock()
}

func (b *Bridge) dispatch(kind string, payload any) error {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()

	if send == nil {
		return ErrNoClient
	}
	return send(kind, payload)
}

// Start asks the shell to open a microphone capture session.
func (b *Bridge) Start() error {
	return b.dispatch("mic_start", nil)
}

// Stop asks the shell to end the capture session.
func (b *Bridge) Stop() error {
	return b.dispatch("mic_stop", nil)
}

// Speak forwards an utterance to the shell's synthesis engine.
func (b *Bridge) Speak(u speechmodel.Utterance) error {
	return b.dispatch("speak", u)
}

// Cancel drops whatever the shell is currently speaking.
func (b *Bridge) Cancel() error {
	return b.dispatch("cancel_speech", nil)
}
