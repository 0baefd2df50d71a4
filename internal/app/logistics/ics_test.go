package logistics

import (
	"bytes"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
)

func TestWriteICS(t *testing.T) {
	view := DayView{
		Date: "2025-03-01",
		Events: []DayEntry{
			{
				ID:        "a",
				Title:     "Matinee",
				StartTime: "14:00",
				EndTime:   "15:00",
				Venue:     VenueRef{ID: ptr("v1"), Name: ptr("Club"), Address: ptr("Rua Augusta 1500")},
				ToNext:    ToNext{Minutes: ptr(25), Km: ptr(18.4)},
				Alert:     ptr("window of 10 min is shorter than the 25 min drive (delay risk)"),
			},
			{ID: "b", Title: "Show", StartTime: "23:30"},
		},
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, view, fixedNow); err != nil {
		t.Fatalf("WriteICS error: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ParseCalendar error: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20250301T140000" {
		t.Fatalf("unexpected DTSTART %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20250301T150000" {
		t.Fatalf("unexpected DTEND %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyLocation).Value; got != "Rua Augusta 1500" {
		t.Fatalf("unexpected LOCATION %q", got)
	}
	if desc := first.GetProperty(ics.ComponentPropertyDescription).Value; !strings.Contains(desc, "25 min") {
		t.Fatalf("description missing leg: %q", desc)
	}

	// A show without end time runs an hour and may cross midnight.
	if got := events[1].GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20250302T003000" {
		t.Fatalf("unexpected DTEND %q", got)
	}
}

func TestWriteICSRejectsBadDate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, DayView{Date: "tomorrow"}, fixedNow); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
