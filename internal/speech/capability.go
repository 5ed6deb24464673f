// Package speech wraps the platform speech engines behind capability
// interfaces so the rest of the service never touches transport details and
// tests can substitute fakes.
package speech

import speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"

// Recognizer is the platform speech-to-text capability. Implementations
// deliver recognition results through the Capture adapter's Handle* methods;
// Start and Stop only drive the engine.
type Recognizer interface {
	Start() error
	Stop() error
}

// Synthesizer is the platform text-to-speech capability. Speak queues an
// utterance; Cancel drops whatever is in flight.
type Synthesizer interface {
	Speak(u speechmodel.Utterance) error
	Cancel() error
}
