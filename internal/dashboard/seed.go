package dashboard

import "github.com/voicedesk/voicedesk/internal/model/dashboard"

// SeedCalendar is the static schedule shown before the first successful
// fetch, or when the data backend is unreachable.
func SeedCalendar() []dashboard.CalendarEvent {
	return []dashboard.CalendarEvent{
		{ID: "cal1", Time: "09:00 AM", Title: "Daily Stand-up"},
		{ID: "cal2", Time: "10:00 AM", Title: "Client Onboarding Call"},
		{ID: "cal3", Time: "11:30 AM", Title: "Design Review Session"},
		{ID: "cal4", Time: "01:00 PM", Title: "Lunch Break"},
		{ID: "cal5", Time: "02:00 PM", Title: "Feature Planning Meeting"},
	}
}
