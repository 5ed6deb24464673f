package input_test

import (
	"testing"

	"github.com/voicedesk/voicedesk/internal/input"
	"github.com/voicedesk/voicedesk/internal/model/speech"
)

func interimEvent(text string) speech.ResultEvent {
	return speech.ResultEvent{
		Results: []speech.Result{
			{IsFinal: false, Alternatives: []speech.Alternative{{Transcript: text}}},
		},
	}
}

func finalEvent(text string) speech.ResultEvent {
	return speech.ResultEvent{
		Results: []speech.Result{
			{IsFinal: true, Alternatives: []speech.Alternative{{Transcript: text}}},
		},
	}
}

func TestFinalOverwritesInterim(t *testing.T) {
	ctrl := input.NewController()

	ctrl.ApplyRecognition(interimEvent("hel"))
	if got := ctrl.Value(); got != "hel" {
		t.Fatalf("after interim event: got %q want %q", got, "hel")
	}

	ctrl.ApplyRecognition(finalEvent("hello"))
	if got := ctrl.Value(); got != "hello" {
		t.Fatalf("after final event: got %q want %q (must replace, not append)", got, "hello")
	}
}

func TestFinalWinsWithinSingleEvent(t *testing.T) {
	ctrl := input.NewController()

	ev := speech.ResultEvent{
		Results: []speech.Result{
			{IsFinal: true, Alternatives: []speech.Alternative{{Transcript: "turn on "}}},
			{IsFinal: true, Alternatives: []speech.Alternative{{Transcript: "the lights"}}},
			{IsFinal: false, Alternatives: []speech.Alternative{{Transcript: "plea"}}},
		},
	}
	ctrl.ApplyRecognition(ev)

	if got := ctrl.Value(); got != "turn on the lights" {
		t.Fatalf("got %q, want concatenated finals only", got)
	}
}

func TestResultIndexSkipsStaleResults(t *testing.T) {
	ctrl := input.NewController()

	ev := speech.ResultEvent{
		ResultIndex: 1,
		Results: []speech.Result{
			{IsFinal: true, Alternatives: []speech.Alternative{{Transcript: "stale"}}},
			{IsFinal: false, Alternatives: []speech.Alternative{{Transcript: "fresh"}}},
		},
	}
	ctrl.ApplyRecognition(ev)

	if got := ctrl.Value(); got != "fresh" {
		t.Fatalf("got %q, want only results from the new range", got)
	}
}

func TestTypedEditThenClear(t *testing.T) {
	ctrl := input.NewController()

	var seen []string
	ctrl.SetOnChange(func(v string) { seen = append(seen, v) })

	ctrl.SetTyped("what's the weather")
	if got := ctrl.Value(); got != "what's the weather" {
		t.Fatalf("typed value lost: %q", got)
	}

	ctrl.Clear()
	if got := ctrl.Value(); got != "" {
		t.Fatalf("buffer not cleared: %q", got)
	}

	if len(seen) != 2 || seen[1] != "" {
		t.Fatalf("onChange sequence unexpected: %v", seen)
	}
}

func TestMalformedEventYieldsEmptyBuffer(t *testing.T) {
	ctrl := input.NewController()
	ctrl.SetTyped("previous")

	ctrl.ApplyRecognition(speech.ResultEvent{ResultIndex: 5, Results: nil})
	if got := ctrl.Value(); got != "" {
		t.Fatalf("malformed event should overwrite wholesale with empty, got %q", got)
	}
}
