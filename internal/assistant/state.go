package assistant

// State is the authoritative snapshot of the interaction flags. Every
// mutation funnels through the orchestrator, which publishes a fresh
// snapshot after each event, so the UI never assembles state from scattered
// fields.
type State struct {
	Listening bool    `json:"listening"`
	Thinking  bool    `json:"thinking"`
	Volume    float64 `json:"volume"`

	// Derived affordances. While the bot is thinking both the input field
	// and the microphone button are disabled; this is the sole guard
	// against overlapping submissions.
	InputEnabled bool `json:"inputEnabled"`
	MicEnabled   bool `json:"micEnabled"`
}
