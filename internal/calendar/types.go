package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventInput carries everything a create or update operation may set on
// an event. Zero values mean "leave unset"; the client layer decides
// which fields reach the API.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
	Recurrence  []string // RRULE, EXRULE, RDATE, EXDATE lines

	// AllDay events carry dates without times
	AllDay bool

	// EventType is one of "default", "outOfOffice", "focusTime",
	// "workingLocation".
	EventType string

	GuestsCanModify         bool
	GuestsCanInviteOthers   bool
	GuestsCanSeeOtherGuests bool

	// UseDefaultConferenceData requests an auto-created Google Meet link.
	UseDefaultConferenceData bool
}

// EventSummary is the flattened event shape returned to tool handlers.
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Creator     string
	Organizer   string
	Status      string
	Attendees   []AttendeeInfo
	MeetLink    string
	EventType   string
}

// AttendeeInfo describes one attendee of an event.
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string // "needsAction", "declined", "tentative", "accepted"
	Optional       bool
	Organizer      bool
}

// CalendarInfo describes one entry of the user's calendar list.
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// FreeBusyInfo is the availability of one calendar over a query window.
type FreeBusyInfo struct {
	Calendar string
	Busy     []TimeRange
	Errors   []string
}

// TimeRange is a half-open [Start, End) interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// eventTime resolves the two mutually exclusive encodings the API uses:
// RFC 3339 datetimes for timed events, bare dates for all-day events.
// Unparseable or absent values yield the zero time.
func eventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return t
		}
		return time.Time{}
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}

// meetLink picks the video entry point out of the event's conference
// data, if any.
func meetLink(cd *calendar.ConferenceData) string {
	if cd == nil {
		return ""
	}
	for _, ep := range cd.EntryPoints {
		if ep.EntryPointType == "video" {
			return ep.Uri
		}
	}
	return ""
}

func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
		EventType:   event.EventType,
		Start:       eventTime(event.Start),
		End:         eventTime(event.End),
		MeetLink:    meetLink(event.ConferenceData),
	}

	if event.Creator != nil {
		summary.Creator = event.Creator.Email
	}
	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}

	return summary
}

func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}

	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}
