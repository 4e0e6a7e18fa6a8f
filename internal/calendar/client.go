package calendar

import (
	"context"
	"fmt"
	"slices"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// ValidResponseStatuses are the attendee response values accepted by
// RespondToEvent.
var ValidResponseStatuses = []string{"accepted", "declined", "tentative", "needsAction"}

// Client wraps the Google Calendar service
type Client struct {
	svc *calendar.Service
}

// NewClient creates a new Calendar client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ListEvents lists events in a calendar within a time range
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]EventSummary, error) {
	call := c.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if query != "" {
		call = call.Q(query)
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	summaries := make([]EventSummary, 0, len(events.Items))
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// GetEvent retrieves a specific event by ID
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}

// eventDateTimes builds the start and end of an event from the input.
// All-day events carry a bare date; timed events carry RFC 3339 with a
// time zone, defaulting to UTC.
func eventDateTimes(input EventInput) (start, end *calendar.EventDateTime) {
	if input.AllDay {
		return &calendar.EventDateTime{Date: input.Start.Format("2006-01-02")},
			&calendar.EventDateTime{Date: input.End.Format("2006-01-02")}
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: tz},
		&calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339), TimeZone: tz}
}

func toAttendees(emails []string) []*calendar.EventAttendee {
	attendees := make([]*calendar.EventAttendee, len(emails))
	for i, email := range emails {
		attendees[i] = &calendar.EventAttendee{Email: email}
	}
	return attendees
}

// applyGuestPermissions copies the guest permission flags onto an event.
// The API fields for inviting and seeing guests default to true, so they
// are only set when the input enables them.
func applyGuestPermissions(event *calendar.Event, input EventInput) {
	event.GuestsCanModify = input.GuestsCanModify
	if input.GuestsCanInviteOthers {
		v := true
		event.GuestsCanInviteOthers = &v
	}
	if input.GuestsCanSeeOtherGuests {
		v := true
		event.GuestsCanSeeOtherGuests = &v
	}
}

// CreateEvent creates a new calendar event
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*EventSummary, error) {
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		EventType:   input.EventType,
		Recurrence:  input.Recurrence,
	}
	event.Start, event.End = eventDateTimes(input)
	if len(input.Attendees) > 0 {
		event.Attendees = toAttendees(input.Attendees)
	}
	applyGuestPermissions(event, input)

	call := c.svc.Events.Insert(calendarID, event).Context(ctx)
	if input.UseDefaultConferenceData {
		// Requesting a Google Meet link requires conference data v1.
		call = call.ConferenceDataVersion(1)
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: fmt.Sprintf("meet-%d", time.Now().Unix()),
			},
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// QuickAdd creates an event from natural language text, letting the
// Calendar API parse the date, time, and title
func (c *Client) QuickAdd(ctx context.Context, calendarID, text string) (*EventSummary, error) {
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	created, err := c.svc.Events.QuickAdd(calendarID, text).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to quick-add event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// UpdateEvent applies the non-zero fields of input to an existing event.
// Empty strings and zero times leave the stored values untouched.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, input EventInput) (*EventSummary, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing event: %w", err)
	}

	if input.Summary != "" {
		existing.Summary = input.Summary
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Location != "" {
		existing.Location = input.Location
	}
	if input.EventType != "" {
		existing.EventType = input.EventType
	}

	if !input.Start.IsZero() || !input.End.IsZero() {
		start, end := eventDateTimes(input)
		if !input.Start.IsZero() {
			existing.Start = start
		}
		if !input.End.IsZero() {
			existing.End = end
		}
	}

	if len(input.Attendees) > 0 {
		existing.Attendees = toAttendees(input.Attendees)
	}
	if len(input.Recurrence) > 0 {
		existing.Recurrence = input.Recurrence
	}
	applyGuestPermissions(existing, input)

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// RespondToEvent sets the authenticated user's attendance response on an
// event. Fetches the event to find the user's attendee entry, then patches
// the attendee list with the new response status.
func (c *Client) RespondToEvent(ctx context.Context, calendarID, eventID, response string) (*EventSummary, error) {
	if !slices.Contains(ValidResponseStatuses, response) {
		return nil, fmt.Errorf("invalid response %q, must be one of: accepted, declined, tentative, needsAction", response)
	}

	event, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	found := false
	for _, att := range event.Attendees {
		if att.Self {
			att.ResponseStatus = response
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("authenticated user is not an attendee of event %s", eventID)
	}

	updated, err := c.svc.Events.Patch(calendarID, eventID, &calendar.Event{
		Attendees: event.Attendees,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to respond to event: %w", err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// DeleteEvent deletes a calendar event
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// ListCalendars lists all calendars accessible to the user
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	calendars := make([]CalendarInfo, 0, len(list.Items))
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}

	return calendars, nil
}

// GetCalendar retrieves information about a specific calendar
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*CalendarInfo, error) {
	entry, err := c.svc.CalendarList.Get(calendarID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	info := toCalendarInfo(entry)
	return &info, nil
}

// QueryFreeBusy checks availability for calendars in a time range
func (c *Client) QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) ([]FreeBusyInfo, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	result, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	var infos []FreeBusyInfo
	for calID, cal := range result.Calendars {
		info := FreeBusyInfo{Calendar: calID}
		for _, busy := range cal.Busy {
			start, _ := time.Parse(time.RFC3339, busy.Start)
			end, _ := time.Parse(time.RFC3339, busy.End)
			info.Busy = append(info.Busy, TimeRange{Start: start, End: end})
		}
		for _, calErr := range cal.Errors {
			info.Errors = append(info.Errors, calErr.Reason)
		}
		infos = append(infos, info)
	}

	return infos, nil
}
