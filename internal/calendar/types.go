package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/puchtools/puchcal/internal/fault"
)

// EventInput is the caller-supplied description of an event. Create and
// update take the same shape; update replaces the whole record with it.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

// validate enforces the input rules shared by create and update.
func (in EventInput) validate() error {
	if in.Summary == "" {
		return fault.New(fault.KindValidation, "event summary must not be empty")
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return fault.New(fault.KindValidation, "event start and end must be set")
	}
	if !in.Start.Before(in.End) {
		return fault.New(fault.KindValidation, "event start must be before end")
	}
	return nil
}

// toAPI builds the wire representation. Timestamps are serialized as
// RFC3339 with their offsets; the IANA zone name rides along when given.
func (in EventInput) toAPI() *calendar.Event {
	event := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start: &calendar.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: in.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: in.End.Format(time.RFC3339),
			TimeZone: in.TimeZone,
		},
	}
	for _, email := range in.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	return event
}

// Event is the simplified view of a calendar event returned to tool
// handlers.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Status      string
	Attendees   []string
	HTMLLink    string
}

// fromAPI converts a wire event. All-day events carry a bare date; both
// forms are handled.
func fromAPI(event *calendar.Event) Event {
	out := Event{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
		HTMLLink:    event.HtmlLink,
	}

	out.Start = parseEventTime(event.Start)
	out.End = parseEventTime(event.End)

	for _, att := range event.Attendees {
		out.Attendees = append(out.Attendees, att.Email)
	}
	return out
}

func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
		return time.Time{}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
