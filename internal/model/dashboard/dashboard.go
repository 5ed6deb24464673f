package dashboard

// CalendarEvent is one entry of the calendar widget.
type CalendarEvent struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Title string `json:"title"`
}

// EmailItem is one entry of the inbox widget.
type EmailItem struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
}

// WeatherSnapshot holds the structured weather fields. All fields are
// optional; Available reports whether the upstream returned anything.
type WeatherSnapshot struct {
	Location    string  `json:"location,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Humidity    float64 `json:"humidity,omitempty"`
	Available   bool    `json:"available"`
}
