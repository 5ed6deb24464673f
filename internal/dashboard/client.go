// Package dashboard fetches the side-panel widget data. It is display
// plumbing around an external collaborator: every upstream gap is defaulted,
// never surfaced as an error to the widgets.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/voicedesk/voicedesk/internal/model/dashboard"
)

// Defaults applied when the upstream omits a field.
const (
	UnknownSender = "Unknown Sender"
	NoSubject     = "No Subject"
	UnknownTime   = "Unknown Time"
)

// Client fetches calendar, email, and weather snapshots from the data
// backend. Fetches are independent of chat state and of each other.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient targets the data backend at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type emailPayload struct {
	Emails []struct {
		ID      string `json:"id"`
		From    string `json:"from"`
		Sender  string `json:"sender"`
		Subject string `json:"subject"`
		Snippet string `json:"snippet"`
	} `json:"emails"`
}

// FetchEmails returns the latest inbox items. Missing fields fall back to
// safe placeholders; a missing list yields an empty slice.
func (c *Client) FetchEmails(ctx context.Context) ([]dashboard.EmailItem, error) {
	var payload emailPayload
	if err := c.getJSON(ctx, "/fetch_latest_emails", &payload); err != nil {
		return nil, err
	}

	items := make([]dashboard.EmailItem, 0, len(payload.Emails))
	for _, email := range payload.Emails {
		sender := email.From
		if sender == "" {
			sender = email.Sender
		}
		if sender == "" {
			sender = UnknownSender
		}
		subject := email.Subject
		if subject == "" {
			subject = NoSubject
		}
		id := email.ID
		if id == "" {
			id = "mail-" + uuid.NewString()
		}
		items = append(items, dashboard.EmailItem{
			ID:      id,
			Sender:  sender,
			Subject: subject,
			Snippet: email.Snippet,
		})
	}
	return items, nil
}

type calendarPayload struct {
	Events []struct {
		ID    string `json:"id"`
		Time  string `json:"time"`
		Title string `json:"title"`
		// Google-style event shape.
		Summary string `json:"summary"`
		Start   struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"start"`
	} `json:"events"`
}

// FetchCalendar returns upcoming events, accepting both the flat shape and
// the Google-style start object.
func (c *Client) FetchCalendar(ctx context.Context) ([]dashboard.CalendarEvent, error) {
	var payload calendarPayload
	if err := c.getJSON(ctx, "/fetch_calendar_events", &payload); err != nil {
		return nil, err
	}

	events := make([]dashboard.CalendarEvent, 0, len(payload.Events))
	for _, event := range payload.Events {
		when := event.Time
		if when == "" {
			when = event.Start.DateTime
		}
		if when == "" {
			when = event.Start.Date
		}
		if when == "" {
			when = UnknownTime
		}
		title := event.Title
		if title == "" {
			title = event.Summary
		}
		id := event.ID
		if id == "" {
			id = "cal-" + uuid.NewString()
		}
		events = append(events, dashboard.CalendarEvent{
			ID:    id,
			Time:  when,
			Title: title,
		})
	}
	return events, nil
}

type weatherPayload struct {
	Weather *dashboard.WeatherSnapshot `json:"weather"`
}

// FetchWeather returns the current snapshot. An absent weather object is
// reported as unavailable, not as an error.
func (c *Client) FetchWeather(ctx context.Context) (dashboard.WeatherSnapshot, error) {
	var payload weatherPayload
	if err := c.getJSON(ctx, "/fetch_weather", &payload); err != nil {
		return dashboard.WeatherSnapshot{}, err
	}

	if payload.Weather == nil {
		return dashboard.WeatherSnapshot{Available: false}, nil
	}

	snapshot := *payload.Weather
	snapshot.Available = true
	return snapshot, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
