package speech

import (
	"log"
	"sync"

	speechmodel "github.com/voicedesk/voicedesk/internal/model/speech"
)

// DefaultVolume is the gain restored by an unmute when no prior non-zero
// level was ever recorded.
const DefaultVolume = 0.7

// Speaker drives a Synthesizer under the at-most-one-utterance policy: new
// speech always preempts old. Volume 0 means muted, suppressing synthesis
// entirely; changes take effect on the next Speak only.
type Speaker struct {
	mu         sync.Mutex
	engine     Synthesizer
	volume     float64
	prevVolume float64
}

// NewSpeaker wraps the synthesis capability. A nil engine degrades every
// Speak to a logged no-op.
func NewSpeaker(engine Synthesizer, volume float64) *Speaker {
	if volume < 0 {
		volume = 0
	}
	return &Speaker{
		engine: engine,
		volume: volume,
	}
}

// Speak cancels any in-flight utterance and starts a new one carrying the
// text, the fixed locale, and the current volume as gain. Muted or
// capability-absent calls do nothing; synthesis failure is logged and
// swallowed, never retried.
func (s *Speaker) Speak(text string) {
	s.mu.Lock()
	engine := s.engine
	volume := s.volume
	s.mu.Unlock()

	if engine == nil {
		log.Println("[speaker] speech synthesis unavailable")
		return
	}
	if volume == 0 {
		log.Println("[speaker] assistant audio is muted")
		return
	}

	if err := engine.Cancel(); err != nil {
		log.Printf("[speaker] cancel failed: %v", err)
	}
	utterance := speechmodel.Utterance{
		Text:   text,
		Locale: speechmodel.DefaultLocale,
		Volume: volume,
	}
	if err := engine.Speak(utterance); err != nil {
		log.Printf("[speaker] synthesis failed: %v", err)
	}
}

// Volume returns the current gain; 0 means muted.
func (s *Speaker) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume sets the gain for subsequent utterances. Non-zero levels are
// remembered so a later unmute can restore them.
func (s *Speaker) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	s.mu.Lock()
	if v > 0 {
		s.prevVolume = v
	}
	s.volume = v
	s.mu.Unlock()
}

// Mute silences the assistant, remembering the level in force.
func (s *Speaker) Mute() {
	s.mu.Lock()
	if s.volume > 0 {
		s.prevVolume = s.volume
	}
	s.volume = 0
	s.mu.Unlock()
}

// Unmute restores the previously held non-zero level, or DefaultVolume when
// none was ever set.
func (s *Speaker) Unmute() {
	s.mu.Lock()
	if s.prevVolume > 0 {
		s.volume = s.prevVolume
	} else {
		s.volume = DefaultVolume
	}
	s.mu.Unlock()
}

// Toggle flips between muted and the remembered level, mirroring the audio
// switch affordance.
func (s *Speaker) Toggle() {
	s.mu.Lock()
	muted := s.volume == 0
	s.mu.Unlock()

	if muted {
		s.Unmute()
	} else {
		s.Mute()
	}
}
