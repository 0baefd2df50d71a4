package logistics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tourlogistics/internal/schedule"
)

const (
	icsProductID   = "-//tourlogistics//day itinerary//EN"
	icsLocalLayout = "20060102T150405"
)

// WriteICS renders the day as an iCalendar document with one VEVENT per
// entry. Times are floating local times since events carry no timezone.
func WriteICS(w io.Writer, view DayView, stamp time.Time) error {
	day, err := time.Parse("2006-01-02", view.Date)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", view.Date, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Itinerary " + view.Date)

	for _, entry := range view.Events {
		start := schedule.ParseHHMM(entry.StartTime)
		end := schedule.ParseHHMM(entry.EndTime)
		if end <= start {
			end = start + defaultShowLength
		}

		ev := cal.AddEvent(entry.ID)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetProperty(ics.ComponentPropertyDtStart, day.Add(time.Duration(start)*time.Minute).Format(icsLocalLayout))
		ev.SetProperty(ics.ComponentPropertyDtEnd, day.Add(time.Duration(end)*time.Minute).Format(icsLocalLayout))
		ev.SetSummary(entry.Title)
		if entry.Venue.Address != nil && *entry.Venue.Address != "" {
			ev.SetLocation(*entry.Venue.Address)
		}
		if desc := describe(entry); desc != "" {
			ev.SetDescription(desc)
		}
	}

	_, err = io.WriteString(w, cal.Serialize())
	return err
}

func describe(entry DayEntry) string {
	var lines []string
	if entry.Band.Name != nil {
		lines = append(lines, "Band: "+*entry.Band.Name)
	}
	if entry.Venue.Name != nil {
		lines = append(lines, "Venue: "+*entry.Venue.Name)
	}
	switch {
	case entry.ToNext.Minutes != nil && entry.ToNext.Km != nil:
		lines = append(lines, fmt.Sprintf("Next leg: %d min, %.2f km", *entry.ToNext.Minutes, *entry.ToNext.Km))
	case entry.ToNext.Error != nil:
		lines = append(lines, "Next leg: "+*entry.ToNext.Error)
	}
	if entry.Alert != nil {
		lines = append(lines, "Alert: "+*entry.Alert)
	}
	return strings.Join(lines, "\n")
}
