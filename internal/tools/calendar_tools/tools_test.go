package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/puchtools/puchcal/internal/calendar"
	"github.com/puchtools/puchcal/internal/config"
	"github.com/puchtools/puchcal/internal/server"
)

// fakeEvents is a minimal in-memory Calendar API backend for exercising
// the tool handlers end to end.
type fakeEvents struct {
	mu     sync.Mutex
	events map[string]*gcal.Event
	nextID int
}

func (b *fakeEvents) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var event gcal.Event
			if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
				apiError(w, http.StatusBadRequest, "malformed event")
				return
			}
			b.mu.Lock()
			b.nextID++
			event.Id = fmt.Sprintf("evt-%d", b.nextID)
			event.Status = "confirmed"
			b.events[event.Id] = &event
			b.mu.Unlock()
			writeJSON(w, &event)
		case http.MethodGet:
			b.mu.Lock()
			result := &gcal.Events{Items: []*gcal.Event{}}
			query := strings.ToLower(r.URL.Query().Get("q"))
			for _, event := range b.events {
				if query != "" && !strings.Contains(strings.ToLower(event.Summary), query) {
					continue
				}
				result.Items = append(result.Items, event)
			}
			b.mu.Unlock()
			writeJSON(w, result)
		}
	})
	mux.HandleFunc("/calendars/primary/events/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/calendars/primary/events/")
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.events[id]; !ok {
			apiError(w, http.StatusNotFound, "Not Found")
			return
		}
		switch r.Method {
		case http.MethodPut:
			var event gcal.Event
			if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
				apiError(w, http.StatusBadRequest, "malformed event")
				return
			}
			event.Id = id
			b.events[id] = &event
			writeJSON(w, &event)
		case http.MethodDelete:
			delete(b.events, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func apiError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, code, message)
}

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	backend := httptest.NewServer((&fakeEvents{events: map[string]*gcal.Event{}}).handler())
	t.Cleanup(backend.Close)

	client, err := calendar.NewClient(context.Background(), nil,
		option.WithEndpoint(backend.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)

	cfg := &config.Config{
		AuthToken:   "secret-token",
		PhoneNumber: "919876543210",
		CalendarID:  "primary",
	}
	sc := server.NewServerContext(context.Background(), cfg, nil, nil, nil)
	sc.SetCalendarClient(client)
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestHandleCreateEvent(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateEvent(context.Background(), callRequest(map[string]any{
		"summary":   "Dentist",
		"start":     "2025-07-01T10:00:00-07:00",
		"end":       "2025-07-01T10:45:00-07:00",
		"location":  "Main St Clinic",
		"attendees": "a@example.com, b@example.com",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Event created successfully")
	assert.Contains(t, text, "Dentist")
	assert.Contains(t, text, "evt-1")
	assert.Contains(t, text, "Main St Clinic")
	assert.Contains(t, text, "a@example.com, b@example.com")
}

func TestHandleCreateEvent_MissingSummary(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateEvent(context.Background(), callRequest(map[string]any{
		"start": "2025-07-01T10:00:00Z",
		"end":   "2025-07-01T11:00:00Z",
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "summary is required")
}

func TestHandleCreateEvent_BadTimestamp(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateEvent(context.Background(), callRequest(map[string]any{
		"summary": "Dentist",
		"start":   "tomorrow at 10",
		"end":     "2025-07-01T11:00:00Z",
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "RFC3339")
}

func TestHandleCreateEvent_StartNotBeforeEnd(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateEvent(context.Background(), callRequest(map[string]any{
		"summary": "Dentist",
		"start":   "2025-07-01T11:00:00Z",
		"end":     "2025-07-01T10:00:00Z",
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "start must be before end")
}

func TestHandleListEvents(t *testing.T) {
	sc := newTestServerContext(t)
	ctx := context.Background()

	for _, summary := range []string{"Dentist", "Standup"} {
		result, err := handleCreateEvent(ctx, callRequest(map[string]any{
			"summary": summary,
			"start":   "2025-07-01T10:00:00Z",
			"end":     "2025-07-01T10:30:00Z",
		}), sc)
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	result, err := handleListEvents(ctx, callRequest(map[string]any{
		"timeMin": "2025-07-01T00:00:00Z",
		"timeMax": "2025-07-02T00:00:00Z",
		"query":   "dentist",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Found 1 event(s)")
	assert.Contains(t, text, "Dentist")
	assert.NotContains(t, text, "Standup")
}

func TestHandleListEvents_Empty(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleListEvents(context.Background(), callRequest(map[string]any{
		"timeMin": "2030-01-01T00:00:00Z",
		"timeMax": "2030-01-02T00:00:00Z",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "No events found")
}

func TestHandleUpdateEvent_FullReplace(t *testing.T) {
	sc := newTestServerContext(t)
	ctx := context.Background()

	created, err := handleCreateEvent(ctx, callRequest(map[string]any{
		"summary":     "Dentist",
		"description": "bring insurance card",
		"start":       "2025-07-01T10:00:00Z",
		"end":         "2025-07-01T10:45:00Z",
	}), sc)
	require.NoError(t, err)
	require.False(t, created.IsError)

	result, err := handleUpdateEvent(ctx, callRequest(map[string]any{
		"eventId": "evt-1",
		"summary": "Dentist (rescheduled)",
		"start":   "2025-07-02T10:00:00Z",
		"end":     "2025-07-02T10:45:00Z",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Event replaced successfully")
	assert.Contains(t, text, "Dentist (rescheduled)")
	// The replace carried no description, so it is gone.
	assert.NotContains(t, text, "bring insurance card")
}

func TestHandleUpdateEvent_NotFound(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleUpdateEvent(context.Background(), callRequest(map[string]any{
		"eventId": "no-such-event",
		"summary": "x",
		"start":   "2025-07-01T10:00:00Z",
		"end":     "2025-07-01T11:00:00Z",
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestHandleDeleteEvent(t *testing.T) {
	sc := newTestServerContext(t)
	ctx := context.Background()

	created, err := handleCreateEvent(ctx, callRequest(map[string]any{
		"summary": "Dentist",
		"start":   "2025-07-01T10:00:00Z",
		"end":     "2025-07-01T10:45:00Z",
	}), sc)
	require.NoError(t, err)
	require.False(t, created.IsError)

	result, err := handleDeleteEvent(ctx, callRequest(map[string]any{"eventId": "evt-1"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "deleted")

	// Second delete reports not found.
	result, err = handleDeleteEvent(ctx, callRequest(map[string]any{"eventId": "evt-1"}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestHandleDeleteEvent_MissingID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleDeleteEvent(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "eventId is required")
}
