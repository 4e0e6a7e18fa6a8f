package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
)

func TestToEventSummary(t *testing.T) {
	t.Run("nil event", func(t *testing.T) {
		assert.Empty(t, toEventSummary(nil).ID)
	})

	t.Run("timed event", func(t *testing.T) {
		event := &calendar.Event{
			Id:          "evt-standup",
			Summary:     "Daily Standup",
			Description: "15 minute sync",
			Location:    "Huddle Room",
			Status:      "confirmed",
			Start:       &calendar.EventDateTime{DateTime: "2026-03-09T09:15:00Z"},
			End:         &calendar.EventDateTime{DateTime: "2026-03-09T09:30:00Z"},
			Creator:     &calendar.EventCreator{Email: "lead@example.com"},
			Organizer:   &calendar.EventOrganizer{Email: "team@example.com"},
			Attendees: []*calendar.EventAttendee{
				{Email: "dev1@example.com", DisplayName: "Dev One", ResponseStatus: "accepted"},
				{Email: "dev2@example.com", ResponseStatus: "needsAction", Optional: true},
			},
			ConferenceData: &calendar.ConferenceData{
				EntryPoints: []*calendar.EntryPoint{
					{EntryPointType: "phone", Uri: "tel:+14155550100"},
					{EntryPointType: "video", Uri: "https://meet.google.com/xyz-abcd-efg"},
				},
			},
		}

		summary := toEventSummary(event)

		assert.Equal(t, "evt-standup", summary.ID)
		assert.Equal(t, "Daily Standup", summary.Summary)
		assert.Equal(t, time.Date(2026, 3, 9, 9, 15, 0, 0, time.UTC), summary.Start)
		assert.Equal(t, time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC), summary.End)
		assert.Equal(t, "lead@example.com", summary.Creator)
		assert.Equal(t, "team@example.com", summary.Organizer)

		require.Len(t, summary.Attendees, 2)
		assert.Equal(t, "accepted", summary.Attendees[0].ResponseStatus)
		assert.True(t, summary.Attendees[1].Optional)

		// The phone entry point must not win over the video one.
		assert.Equal(t, "https://meet.google.com/xyz-abcd-efg", summary.MeetLink)
	})

	t.Run("all-day event", func(t *testing.T) {
		summary := toEventSummary(&calendar.Event{
			Id:      "evt-offsite",
			Summary: "Team Offsite",
			Start:   &calendar.EventDateTime{Date: "2026-05-18"},
			End:     &calendar.EventDateTime{Date: "2026-05-19"},
		})

		assert.Equal(t, time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC), summary.Start)
		assert.Equal(t, time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC), summary.End)
	})
}

func TestToCalendarInfo(t *testing.T) {
	assert.Empty(t, toCalendarInfo(nil).ID)

	info := toCalendarInfo(&calendar.CalendarListEntry{
		Id:          "primary",
		Summary:     "Work",
		Description: "Work calendar",
		TimeZone:    "Europe/Berlin",
		Primary:     true,
		AccessRole:  "owner",
	})

	assert.Equal(t, "primary", info.ID)
	assert.Equal(t, "Work", info.Summary)
	assert.Equal(t, "Europe/Berlin", info.TimeZone)
	assert.True(t, info.Primary)
	assert.Equal(t, "owner", info.AccessRole)
}

func TestEventDateTimes(t *testing.T) {
	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	t.Run("timed defaults to UTC", func(t *testing.T) {
		s, e := eventDateTimes(EventInput{Start: start, End: end})
		assert.Equal(t, "2026-04-01T14:00:00Z", s.DateTime)
		assert.Equal(t, "UTC", s.TimeZone)
		assert.Equal(t, "2026-04-01T14:45:00Z", e.DateTime)
		assert.Empty(t, s.Date)
	})

	t.Run("timed with explicit zone", func(t *testing.T) {
		s, _ := eventDateTimes(EventInput{Start: start, End: end, TimeZone: "America/New_York"})
		assert.Equal(t, "America/New_York", s.TimeZone)
	})

	t.Run("all-day uses bare dates", func(t *testing.T) {
		s, e := eventDateTimes(EventInput{Start: start, End: end, AllDay: true})
		assert.Equal(t, "2026-04-01", s.Date)
		assert.Equal(t, "2026-04-01", e.Date)
		assert.Empty(t, s.DateTime)
		assert.Empty(t, s.TimeZone)
	})
}

func TestToAttendees(t *testing.T) {
	attendees := toAttendees([]string{"a@example.com", "b@example.com"})
	require.Len(t, attendees, 2)
	assert.Equal(t, "a@example.com", attendees[0].Email)
	assert.Equal(t, "b@example.com", attendees[1].Email)

	assert.Empty(t, toAttendees(nil))
}

func TestApplyGuestPermissions(t *testing.T) {
	t.Run("flags off leave API defaults alone", func(t *testing.T) {
		event := &calendar.Event{}
		applyGuestPermissions(event, EventInput{})
		assert.False(t, event.GuestsCanModify)
		assert.Nil(t, event.GuestsCanInviteOthers)
		assert.Nil(t, event.GuestsCanSeeOtherGuests)
	})

	t.Run("flags on set explicit values", func(t *testing.T) {
		event := &calendar.Event{}
		applyGuestPermissions(event, EventInput{
			GuestsCanModify:         true,
			GuestsCanInviteOthers:   true,
			GuestsCanSeeOtherGuests: true,
		})
		assert.True(t, event.GuestsCanModify)
		require.NotNil(t, event.GuestsCanInviteOthers)
		assert.True(t, *event.GuestsCanInviteOthers)
		require.NotNil(t, event.GuestsCanSeeOtherGuests)
		assert.True(t, *event.GuestsCanSeeOtherGuests)
	})
}

func TestValidResponseStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"accepted", "declined", "tentative", "needsAction"},
		ValidResponseStatuses)
}
