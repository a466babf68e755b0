package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/puchtools/puchcal/internal/calendar"
	"github.com/puchtools/puchcal/internal/fault"
	"github.com/puchtools/puchcal/internal/server"
	"github.com/puchtools/puchcal/internal/tools/common"
)

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	input, errResult := eventInputFromArgs(request.GetArguments())
	if errResult != nil {
		return errResult, nil
	}

	client, err := sc.CalendarClient()
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	event, err := client.CreateEvent(ctx, sc.Config().CalendarID, *input)
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event created successfully.\n\n%s", formatEvent(*event))), nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	timeMin, errResult := requiredTime(args, "timeMin")
	if errResult != nil {
		return errResult, nil
	}
	timeMax, errResult := requiredTime(args, "timeMax")
	if errResult != nil {
		return errResult, nil
	}
	query := common.OptionalString(args, "query")

	client, err := sc.CalendarClient()
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	events, err := client.ListEvents(ctx, sc.Config().CalendarID, timeMin, timeMax, query)
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	if len(events) == 0 {
		return mcp.NewToolResultText("No events found in the given time range."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d event(s):\n", len(events))
	for i, event := range events {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, formatEventLine(event))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	input, errResult := eventInputFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	client, err := sc.CalendarClient()
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	event, err := client.UpdateEvent(ctx, sc.Config().CalendarID, eventID, *input)
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event replaced successfully.\n\n%s", formatEvent(*event))), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	client, err := sc.CalendarClient()
	if err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	if err := client.DeleteEvent(ctx, sc.Config().CalendarID, eventID); err != nil {
		return mcp.NewToolResultError(faultMessage(err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted.", eventID)), nil
}

// eventInputFromArgs extracts the shared create/update event fields.
// On bad input it returns a nil input and a ready error result.
func eventInputFromArgs(args map[string]any) (*calendar.EventInput, *mcp.CallToolResult) {
	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return nil, mcp.NewToolResultError("summary is required")
	}

	start, errResult := requiredTime(args, "start")
	if errResult != nil {
		return nil, errResult
	}
	end, errResult := requiredTime(args, "end")
	if errResult != nil {
		return nil, errResult
	}

	input := &calendar.EventInput{
		Summary: summary,
		Start:   start,
		End:     end,
	}
	input.TimeZone = common.OptionalString(args, "timeZone")
	input.Description = common.OptionalString(args, "description")
	input.Location = common.OptionalString(args, "location")

	if raw := common.OptionalString(args, "attendees"); raw != "" {
		for _, email := range strings.Split(raw, ",") {
			if email = strings.TrimSpace(email); email != "" {
				input.Attendees = append(input.Attendees, email)
			}
		}
	}

	return input, nil
}

// requiredTime parses a required RFC3339 timestamp argument.
func requiredTime(args map[string]any, key string) (time.Time, *mcp.CallToolResult) {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return time.Time{}, mcp.NewToolResultError(fmt.Sprintf("%s is required", key))
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, mcp.NewToolResultError(fmt.Sprintf("%s must be an RFC3339 timestamp (e.g., '2025-07-01T10:00:00-07:00'): %v", key, err))
	}
	return t, nil
}

// faultMessage maps a fault kind to a message the assistant can relay
// to the user.
func faultMessage(err error) string {
	switch fault.KindOf(err) {
	case fault.KindAuth:
		return fmt.Sprintf("Calendar access was denied. Grant calendar access to the configured Google credential and try again: %v", err)
	case fault.KindNotFound:
		return fmt.Sprintf("Event not found. It may have been deleted already: %v", err)
	case fault.KindValidation:
		return err.Error()
	default:
		return fmt.Sprintf("Calendar request failed: %v", err)
	}
}

// formatEvent renders a full event block for create/update results.
func formatEvent(event calendar.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID: %s\n", event.ID)
	fmt.Fprintf(&sb, "Summary: %s\n", event.Summary)
	fmt.Fprintf(&sb, "Start: %s\n", event.Start.Format(time.RFC3339))
	fmt.Fprintf(&sb, "End: %s", event.End.Format(time.RFC3339))
	if event.Location != "" {
		fmt.Fprintf(&sb, "\nLocation: %s", event.Location)
	}
	if event.Description != "" {
		fmt.Fprintf(&sb, "\nDescription: %s", event.Description)
	}
	if len(event.Attendees) > 0 {
		fmt.Fprintf(&sb, "\nAttendees: %s", strings.Join(event.Attendees, ", "))
	}
	if event.HTMLLink != "" {
		fmt.Fprintf(&sb, "\nLink: %s", event.HTMLLink)
	}
	return sb.String()
}

// formatEventLine renders the one-line list form.
func formatEventLine(event calendar.Event) string {
	line := fmt.Sprintf("%s (%s - %s) [ID: %s]",
		event.Summary,
		event.Start.Format(time.RFC3339),
		event.End.Format(time.RFC3339),
		event.ID)
	if event.Location != "" {
		line += " @ " + event.Location
	}
	return line
}
