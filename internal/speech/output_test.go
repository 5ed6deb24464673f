package speech_test

import (
	"testing"

	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
	"github.com/voicedesk/voicedesk/internal/speech"
)

type fakeSynthesizer struct {
	calls      []string // "cancel" / "speak"
	utterances []speechmodel.Utterance
}

func (f *fakeSynthesizer) Speak(u speechmodel.Utterance) error {
	f.calls = append(f.calls, "speak")
	f.utterances = append(f.utterances, u)
	return nil
}

func (f *fakeSynthesizer) Cancel() error {
	f.calls = append(f.calls, "cancel")
	return nil
}

func TestSpeakCancelsBeforeSpeaking(t *testing.T) {
	engine := &fakeSynthesizer{}
	speaker := speech.NewSpeaker(engine, speech.DefaultVolume)

	speaker.Speak("hi")
	speaker.Speak("hi")

	want := []string{"cancel", "speak", "cancel", "speak"}
	if len(engine.calls) != len(want) {
		t.Fatalf("calls: %v", engine.calls)
	}
	for i, call := range want {
		if engine.calls[i] != call {
			t.Fatalf("call %d: got %s want %s (full: %v)", i, engine.calls[i], call, engine.calls)
		}
	}
}

func TestSpeakCarriesLocaleAndVolume(t *testing.T) {
	engine := &fakeSynthesizer{}
	speaker := speech.NewSpeaker(engine, 0.4)

	speaker.Speak("hello")

	if len(engine.utterances) != 1 {
		t.Fatalf("expected one utterance, got %d", len(engine.utterances))
	}
	u := engine.utterances[0]
	if u.Text != "hello" || u.Locale != speechmodel.DefaultLocale || u.Volume != 0.4 {
		t.Fatalf("unexpected utterance: %+v", u)
	}
}

func TestMutedSpeakIsNoOp(t *testing.T) {
	engine := &fakeSynthesizer{}
	speaker := speech.NewSpeaker(engine, speech.DefaultVolume)

	speaker.Mute()
	speaker.Speak("silent")

	if len(engine.calls) != 0 {
		t.Fatalf("muted speak must not touch the engine: %v", engine.calls)
	}
}

func TestUnmuteRestoresPreviousVolume(t *testing.T) {
	speaker := speech.NewSpeaker(&fakeSynthesizer{}, 0)
	speaker.SetVolume(0.9)

	speaker.Mute()
	if speaker.Volume() != 0 {
		t.Fatalf("mute should zero the volume, got %v", speaker.Volume())
	}

	speaker.Unmute()
	if speaker.Volume() != 0.9 {
		t.Fatalf("unmute should restore 0.9, got %v", speaker.Volume())
	}
}

func TestUnmuteFromNeverSetStateUsesDefault(t *testing.T) {
	speaker := speech.NewSpeaker(&fakeSynthesizer{}, 0)

	speaker.Unmute()

	if speaker.Volume() != speech.DefaultVolume {
		t.Fatalf("got %v, want the fixed default %v", speaker.Volume(), speech.DefaultVolume)
	}
}

func TestVolumeChangeAppliesToNextUtteranceOnly(t *testing.T) {
	engine := &fakeSynthesizer{}
	speaker := speech.NewSpeaker(engine, 0.7)

	speaker.Speak("first")
	speaker.SetVolume(0.2)
	speaker.Speak("second")

	if engine.utterances[0].Volume != 0.7 || engine.utterances[1].Volume != 0.2 {
		t.Fatalf("volumes: %v then %v", engine.utterances[0].Volume, engine.utterances[1].Volume)
	}
}

func TestCapabilityAbsentSpeakIsNoOp(t *testing.T) {
	speaker := speech.NewSpeaker(nil, speech.DefaultVolume)
	// Must not panic; failure is logged and swallowed.
	speaker.Speak("nothing to hear")
}
