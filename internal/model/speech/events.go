package speech

// Alternative is one candidate transcript for a recognized segment.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Result carries the alternatives for one recognized segment, tagged final
// (complete) or interim (provisional, subject to revision).
type Result struct {
	IsFinal      bool          `json:"isFinal"`
	Alternatives []Alternative `json:"alternatives"`
}

// Transcript returns the top alternative, or "" when none exist.
func (r Result) Transcript() string {
	if len(r.Alternatives) == 0 {
		return ""
	}
	return r.Alternatives[0].Transcript
}

// ResultEvent is a single recognition event from the platform engine.
// Results holds every segment of the session so far; ResultIndex marks the
// first segment that changed since the previous event.
type ResultEvent struct {
	ResultIndex int      `json:"resultIndex"`
	Results     []Result `json:"results"`
}

// NewResults returns the segments added or revised by this event. An index
// out of range yields nothing rather than panicking on a malformed event.
func (e ResultEvent) NewResults() []Result {
	if e.ResultIndex < 0 || e.ResultIndex >= len(e.Results) {
		return nil
	}
	return e.Results[e.ResultIndex:]
}
