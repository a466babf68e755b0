package calendar

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/puchtools/puchcal/internal/fault"
	"github.com/puchtools/puchcal/internal/googleauth"
)

// Client wraps the Google Calendar service with the four event
// operations the tool layer needs. The remote service is the sole
// source of truth; nothing is cached and nothing is retried.
type Client struct {
	svc *calendar.Service
}

// NewClient creates a calendar client authenticated by the token
// provider. Extra options are appended, which tests use to point the
// client at a local backend.
func NewClient(ctx context.Context, provider googleauth.TokenProvider, extra ...option.ClientOption) (*Client, error) {
	opts := make([]option.ClientOption, 0, len(extra)+1)
	if provider != nil {
		opts = append(opts, option.WithTokenSource(googleauth.TokenSource(ctx, provider)))
	}
	opts = append(opts, extra...)

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// CreateEvent inserts a new event into the calendar and returns it with
// the server-assigned id.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := c.svc.Events.Insert(calendarID, input.toAPI()).Context(ctx).Do()
	if err != nil {
		return nil, fault.FromGoogleAPI(err, "creating event")
	}

	event := fromAPI(created)
	return &event, nil
}

// ListEvents returns the single (recurrence-expanded) events between
// timeMin and timeMax in ascending start order. An empty range yields
// an empty slice. A non-empty query is passed through as a free-text
// filter.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]Event, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	if query != "" {
		call = call.Q(query)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fault.FromGoogleAPI(err, "listing events")
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, fromAPI(item))
	}
	return events, nil
}

// UpdateEvent replaces the full event record with the given input.
// Fields absent from the input are cleared on the server, so callers
// must re-supply everything they want to keep.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, input EventInput) (*Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, input.toAPI()).Context(ctx).Do()
	if err != nil {
		return nil, fault.FromGoogleAPI(err, "updating event %s", eventID)
	}

	event := fromAPI(updated)
	return &event, nil
}

// DeleteEvent removes an event. A missing event maps to a not_found
// fault; callers may treat that as already gone.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fault.FromGoogleAPI(err, "deleting event %s", eventID)
	}
	return nil
}
