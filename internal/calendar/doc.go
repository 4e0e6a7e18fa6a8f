// Package calendar wraps the Google Calendar v3 API: event CRUD,
// natural-language quick add, invitation responses, calendar listing,
// and free/busy queries across calendars.
//
// Calendar IDs are email-style; "primary" always resolves to the
// authenticated user's main calendar. All-day events are represented
// with bare dates, timed events with RFC 3339 datetimes and a zone.
package calendar
