package speech_test

import (
	"errors"
	"testing"

	"github.com/voicedesk/voicedesk/internal/input"
	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
	"github.com/voicedesk/voicedesk/internal/speech"
)

type fakeRecognizer struct {
	starts   int
	stops    int
	startErr error
}

func (f *fakeRecognizer) Start() error { f.starts++; return f.startErr }
func (f *fakeRecognizer) Stop() error  { f.stops++; return nil }

func resultEvent(final bool, text string) speechmodel.ResultEvent {
	return speechmodel.ResultEvent{
		Results: []speechmodel.Result{
			{IsFinal: final, Alternatives: []speechmodel.Alternative{{Transcript: text}}},
		},
	}
}

func TestStartClearsBufferAndMarksListening(t *testing.T) {
	engine := &fakeRecognizer{}
	buffer := input.NewController()
	buffer.SetTyped("leftover")
	capture := speech.NewCapture(engine, buffer)

	capture.StartListening()

	if !capture.IsListening() {
		t.Fatal("expected listening after start")
	}
	if buffer.Value() != "" {
		t.Fatalf("buffer not cleared on start: %q", buffer.Value())
	}
	if engine.starts != 1 {
		t.Fatalf("engine started %d times", engine.starts)
	}
}

func TestStartWhileListeningIsNoOp(t *testing.T) {
	engine := &fakeRecognizer{}
	capture := speech.NewCapture(engine, input.NewController())

	capture.StartListening()
	capture.StartListening()

	if engine.starts != 1 {
		t.Fatalf("second start must be a no-op, engine started %d times", engine.starts)
	}
}

func TestStartWithoutCapabilityLeavesStateUnchanged(t *testing.T) {
	capture := speech.NewCapture(nil, input.NewController())

	capture.StartListening()

	if capture.IsListening() {
		t.Fatal("capability-absent start must not mark listening")
	}
}

func TestStartFailureResetsFlag(t *testing.T) {
	engine := &fakeRecognizer{startErr: errors.New("mic busy")}
	capture := speech.NewCapture(engine, input.NewController())

	capture.StartListening()

	if capture.IsListening() {
		t.Fatal("listening flag must reset when the engine fails to start")
	}
}

func TestStopThenPlatformEndFlipsFlagOnce(t *testing.T) {
	engine := &fakeRecognizer{}
	capture := speech.NewCapture(engine, input.NewController())

	var states []bool
	capture.SetOnState(func(listening bool) { states = append(states, listening) })

	capture.StartListening()
	capture.StopListening()
	// Platform delivers its own end notification afterwards.
	capture.HandleEnd()

	if capture.IsListening() {
		t.Fatal("expected not listening")
	}
	if len(states) != 2 || states[0] != true || states[1] != false {
		t.Fatalf("flag must end up false exactly once, transitions: %v", states)
	}
}

func TestResultEventsUpdateBuffer(t *testing.T) {
	engine := &fakeRecognizer{}
	buffer := input.NewController()
	capture := speech.NewCapture(engine, buffer)

	capture.StartListening()
	capture.HandleResult(resultEvent(false, "hel"))
	capture.HandleResult(resultEvent(true, "hello"))

	if buffer.Value() != "hello" {
		t.Fatalf("got %q, want final transcript", buffer.Value())
	}
}

func TestErrorEndsSession(t *testing.T) {
	engine := &fakeRecognizer{}
	capture := speech.NewCapture(engine, input.NewController())

	capture.StartListening()
	capture.HandleError(errors.New("no-speech"))

	if capture.IsListening() {
		t.Fatal("platform error must end the session")
	}
}

func TestCloseStopsSessionAndDropsLaterEvents(t *testing.T) {
	engine := &fakeRecognizer{}
	buffer := input.NewController()
	capture := speech.NewCapture(engine, buffer)

	capture.StartListening()
	capture.Close()

	if engine.stops != 1 {
		t.Fatalf("active session must be stopped on close, stops=%d", engine.stops)
	}

	capture.HandleResult(resultEvent(true, "late"))
	if buffer.Value() != "" {
		t.Fatalf("event observed after close: %q", buffer.Value())
	}

	capture.StartListening()
	if capture.IsListening() {
		t.Fatal("closed adapter must ignore start")
	}
}
