// Package session is the websocket gateway between the browser shell and
// the assistant core. The shell is a dumb terminal: it forwards recognition
// events and keystrokes in, and renders transcript, state, and speech
// commands out.
package session

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/voicedesk/voicedesk/internal/assistant"
	"github.com/voicedesk/voicedesk/internal/input"
	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
	"github.com/voicedesk/voicedesk/internal/speech"
	"github.com/voicedesk/voicedesk/internal/store"
	"github.com/voicedesk/voicedesk/pkg/utils"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler owns the single UI session and fans conversation changes out to
// the websocket and any SSE observers.
type Handler struct {
	orch     *assistant.Orchestrator
	conv     *store.Conversation
	buffer   *input.Controller
	capture  *speech.Capture
	bridge   *Bridge
	upgrader websocket.Upgrader

	mu          sync.Mutex
	conn        *websocket.Conn
	writeMu     sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// New wires the handler into the core's change notifications.
func New(orch *assistant.Orchestrator, conv *store.Conversation, buffer *input.Controller, capture *speech.Capture, bridge *Bridge) *Handler {
	h := &Handler{
		orch:    orch,
		conv:    conv,
		buffer:  buffer,
		capture: capture,
		bridge:  bridge,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		subscribers: make(map[chan struct{}]struct{}),
	}

	conv.SetOnMutate(h.onTranscriptChange)
	orch.SetOnState(h.pushState)
	buffer.SetOnChange(h.pushInput)
	return h
}

// RegisterRoutes mounts the UI session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ui/ws", h.handleWebSocket)
	r.Get("/transcript", h.handleTranscript)
	r.Get("/transcript/stream", h.handleTranscriptStream)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type textPayload struct {
	Text string `json:"text"`
}

// handleWebSocket runs the UI session. A new connection supersedes the
// previous one; transcript and state are replayed on attach so a reloaded
// shell starts consistent.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[session] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.attach(conn)
	defer h.detach(conn)

	log.Printf("[session] ui client connected from %s", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	// Replay current state so the shell renders without waiting for the
	// next mutation.
	h.pushTranscript()
	h.pushState(h.orch.Snapshot())

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[session] read error: %v", err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		h.handleMessage(ctx, msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg inboundMessage) {
	switch msg.Type {
	case "recognition":
		var ev speechmodel.ResultEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			h.pushError("invalid recognition payload")
			return
		}
		h.capture.HandleResult(ev)

	case "recognition_error":
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.pushError("invalid recognition error payload")
			return
		}
		h.capture.HandleError(recognitionError(payload.Error))

	case "recognition_end":
		h.capture.HandleEnd()

	case "input":
		var payload textPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.pushError("invalid input payload")
			return
		}
		h.orch.SetTypedInput(payload.Text)

	case "submit":
		var payload textPayload
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				h.pushError("invalid submit payload")
				return
			}
		}
		if payload.Text != "" {
			h.orch.Submit(ctx, payload.Text)
		} else {
			h.orch.SubmitBuffer(ctx)
		}

	case "mic":
		h.orch.ToggleListening()

	case "audio_toggle":
		h.orch.ToggleAudio()

	default:
		h.pushError("unsupported message type: " + msg.Type)
	}
}

type recognitionError string

func (e recognitionError) Error() string { return string(e) }

// handleTranscript serves the current conversation for non-websocket
// consumers.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"messages": h.conv.Messages(),
	})
}

// handleTranscriptStream pushes the full transcript over SSE after every
// mutation, for read-only observers.
func (h *Handler) handleTranscriptStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	notify := h.subscribe()
	defer h.unsubscribe(notify)

	utils.SendSSEEvent(w, flusher, "transcript", h.conv.Messages())

	for {
		select {
		case <-r.Context().Done():
			return
		case <-notify:
			utils.SendSSEEvent(w, flusher, "transcript", h.conv.Messages())
		}
	}
}

func (h *Handler) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Handler) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.subscribers, ch)
	h.mu.Unlock()
}

func (h *Handler) onTranscriptChange() {
	h.pushTranscript()

	h.mu.Lock()
	for ch := range h.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *Handler) attach(conn *websocket.Conn) {
	h.mu.Lock()
	old := h.conn
	h.conn = conn
	h.mu.Unlock()

	if old != nil {
		old.Close()
	}

	h.bridge.Attach(func(kind string, payload any) error {
		return h.write(outgoingMessage{
			Type:      kind,
			Data:      payload,
			Timestamp: time.Now().Unix(),
		})
	})
}

func (h *Handler) detach(conn *websocket.Conn) {
	h.mu.Lock()
	current := h.conn == conn
	if current {
		h.conn = nil
	}
	h.mu.Unlock()

	if current {
		h.bridge.Detach()
		// A vanished shell cannot keep capturing.
		h.capture.StopListening()
	}
}

func (h *Handler) write(msg outgoingMessage) error {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()

	if conn == nil {
		return ErrNoClient
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (h *Handler) push(kind string, payload any) {
	err := h.write(outgoingMessage{
		Type:      kind,
		Data:      payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil && err != ErrNoClient {
		log.Printf("[session] push %s failed: %v", kind, err)
	}
}

func (h *Handler) pushTranscript() {
	// The full ordered list is pushed on every mutation; rendering it tail
	// first is the shell's scroll-to-newest contract.
	h.push("transcript", map[string]any{"messages": h.conv.Messages()})
}

func (h *Handler) pushState(state assistant.State) {
	h.push("state", state)
}

func (h *Handler) pushInput(value string) {
	h.push("input", textPayload{Text: value})
}

func (h *Handler) pushError(message string) {
	h.push("error", map[string]string{"message": message})
}

// pingLoop keeps the session alive across idle periods.
func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.writeMu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, nil)
			h.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
