package tools

import (
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// CalendarEvent renders an instant as a single-event iCalendar document, so
// a computed date can be dropped straight into a calendar client.
func CalendarEvent(summary string, start time.Time, length time.Duration) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//utility-helper//functions//EN")

	ev := cal.AddEvent(uuid.NewString() + "@utility-helper")
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetStartAt(start.UTC())
	ev.SetEndAt(start.Add(length).UTC())
	ev.SetSummary(summary)
	return cal.Serialize()
}
