// Package assistant drives the request/response cycle between the user, the
// transcript, the agent, and the speech adapters.
package assistant

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/voicedesk/voicedesk/internal/agent"
	"github.com/voicedesk/voicedesk/internal/input"
	"github.com/voicedesk/voicedesk/internal/model/chat"
	"github.com/voicedesk/voicedesk/internal/speech"
	"github.com/voicedesk/voicedesk/internal/store"
)

// WelcomeText opens every conversation and is spoken when audio is enabled.
const WelcomeText = "Hello! I'm your AI assistant. How can I help you today? You can toggle my audio response with the switch in the top-left corner."

// ErrorReplyText replaces the placeholder when the agent call fails, so the
// transcript never shows a dangling loading entry.
const ErrorReplyText = "Sorry, I couldn't reach the assistant right now. Please try again."

// Orchestrator is the dialogue state machine. A submission appends the user
// message, inserts a loading placeholder, issues exactly one agent request
// as a cancelable task, and replaces the placeholder in place when the call
// settles. A superseding submission cancels the prior pending task, so
// responses can never land on the wrong placeholder.
type Orchestrator struct {
	conversation *store.Conversation
	buffer       *input.Controller
	capture      *speech.Capture
	speaker      *speech.Speaker
	responder    agent.Responder

	mu         sync.Mutex
	thinking   bool
	generation int
	cancelPrev context.CancelFunc
	onState    func(State)

	tasks sync.WaitGroup
}

// New wires the orchestrator over its collaborators. Capture state changes
// initiated by the platform (silence timeout, recognition errors) are
// forwarded into the published state.
func New(conversation *store.Conversation, buffer *input.Controller, capture *speech.Capture, speaker *speech.Speaker, responder agent.Responder) *Orchestrator {
	o := &Orchestrator{
		conversation: conversation,
		buffer:       buffer,
		capture:      capture,
		speaker:      speaker,
		responder:    responder,
	}
	capture.SetOnState(func(bool) { o.notifyState() })
	return o
}

// SetOnState registers the listener receiving a snapshot after every
// state-changing event.
func (o *Orchestrator) SetOnState(fn func(State)) {
	o.mu.Lock()
	o.onState = fn
	o.mu.Unlock()
}

// Begin opens the transcript with the welcome message and speaks it.
func (o *Orchestrator) Begin(ctx context.Context) {
	o.conversation.Append(chat.NewBotMessage(WelcomeText))
	o.speaker.Speak(WelcomeText)
	o.notifyState()
}

// Submit runs one request/response cycle for the given text. Empty or
// whitespace-only input is a total no-op: no messages, no request. An
// active capture session is stopped first; submission always cancels
// listening. The agent call itself runs asynchronously; Wait drains it.
func (o *Orchestrator) Submit(ctx context.Context, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	if o.capture.IsListening() {
		o.capture.StopListening()
	}

	o.conversation.Append(chat.NewUserMessage(trimmed))
	o.buffer.Clear()

	placeholder := chat.NewPlaceholder()
	o.conversation.Append(placeholder)

	taskCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	if o.cancelPrev != nil {
		// A prior request is still pending; supersede it.
		o.cancelPrev()
	}
	o.cancelPrev = cancel
	o.generation++
	gen := o.generation
	o.thinking = true
	o.mu.Unlock()
	o.notifyState()

	o.tasks.Add(1)
	go o.runRequest(taskCtx, cancel, gen, trimmed, placeholder.ID)
}

func (o *Orchestrator) runRequest(ctx context.Context, cancel context.CancelFunc, gen int, text, placeholderID string) {
	defer o.tasks.Done()
	defer cancel()

	response, err := o.responder.Ask(ctx, text)
	if err != nil {
		log.Printf("[orchestrator] agent request failed: %v", err)
		o.conversation.Replace(placeholderID, chat.NewBotMessage(ErrorReplyText))
	} else {
		o.conversation.Replace(placeholderID, chat.NewBotMessage(response))
		o.speaker.Speak(response)
	}

	o.mu.Lock()
	// Only the most recent task owns the thinking flag; a superseded task
	// settling late must not re-enable input under a newer pending request.
	if gen == o.generation {
		o.thinking = false
		o.cancelPrev = nil
	}
	o.mu.Unlock()
	o.notifyState()
}

// SubmitBuffer submits whatever the input buffer currently holds.
func (o *Orchestrator) SubmitBuffer(ctx context.Context) {
	o.Submit(ctx, o.buffer.Value())
}

// ToggleListening flips the capture session, honoring the thinking guard
// the same way the disabled microphone button does.
func (o *Orchestrator) ToggleListening() {
	if o.IsThinking() {
		return
	}
	if o.capture.IsListening() {
		o.capture.StopListening()
	} else {
		o.capture.StartListening()
	}
	o.notifyState()
}

// ToggleAudio flips the assistant between muted and the remembered volume.
func (o *Orchestrator) ToggleAudio() {
	o.speaker.Toggle()
	o.notifyState()
}

// SetTypedInput records a keyboard edit, ignored while the input field is
// disabled.
func (o *Orchestrator) SetTypedInput(text string) {
	state := o.Snapshot()
	if !state.InputEnabled {
		return
	}
	o.buffer.SetTyped(text)
}

// IsThinking reports whether an agent request is pending.
func (o *Orchestrator) IsThinking() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.thinking
}

// Snapshot assembles the current state for the UI.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	thinking := o.thinking
	o.mu.Unlock()

	listening := o.capture.IsListening()
	return State{
		Listening:    listening,
		Thinking:     thinking,
		Volume:       o.speaker.Volume(),
		InputEnabled: !thinking && !listening,
		MicEnabled:   o.capture.Available() && !thinking,
	}
}

// Wait blocks until every issued agent task has settled. Used on shutdown
// and in tests.
func (o *Orchestrator) Wait() {
	o.tasks.Wait()
}

func (o *Orchestrator) notifyState() {
	o.mu.Lock()
	fn := o.onState
	o.mu.Unlock()

	if fn != nil {
		fn(o.Snapshot())
	}
}
