package speech

// DefaultLocale is the fixed locale attached to every utterance.
const DefaultLocale = "en-US"

// Utterance is one synthesis request handed to the platform engine. Volume
// is the gain at the moment Speak was called; an utterance already playing
// is never retroactively adjusted.
type Utterance struct {
	Text   string  `json:"text"`
	Locale string  `json:"locale"`
	Volume float64 `json:"volume"`
}
