package logistics

import (
	"context"
	"testing"

	"tourlogistics/internal/maps"
	"tourlogistics/internal/models"
)

func withMinutes(e *models.Event, minutes int) *models.Event {
	e.Logistics = &models.Logistics{ToNextMinutes: ptr(minutes), ToNextKm: ptr(1.0), ToNextUpdatedAt: fixedNow}
	return e
}

func TestAlert(t *testing.T) {
	tests := []struct {
		name string
		cur  *models.Event
		next *models.Event
		want string
	}{
		{
			name: "drive longer than window",
			cur:  withMinutes(event("a", "14:00", "15:00", ""), 25),
			next: event("b", "15:10", "", ""),
			want: "window of 10 min is shorter than the 25 min drive (delay risk)",
		},
		{
			name: "drive fits window",
			cur:  withMinutes(event("a", "14:00", "15:00", ""), 5),
			next: event("b", "15:10", "", ""),
		},
		{
			name: "drive equals window",
			cur:  withMinutes(event("a", "14:00", "15:00", ""), 10),
			next: event("b", "15:10", "", ""),
		},
		{
			name: "missing end falls back to an hour after start",
			cur:  withMinutes(event("a", "14:00", "", ""), 20),
			next: event("b", "15:10", "", ""),
			want: "window of 10 min is shorter than the 20 min drive (delay risk)",
		},
		{
			name: "overlap clamps window to zero",
			cur:  withMinutes(event("a", "14:00", "16:00", ""), 1),
			next: event("b", "15:00", "", ""),
			want: "window of 0 min is shorter than the 1 min drive (delay risk)",
		},
		{
			name: "no stored minutes",
			cur:  event("a", "14:00", "15:00", ""),
			next: event("b", "15:01", "", ""),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Alert(tc.cur, tc.next)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected no alert, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, got)
			}
		})
	}
}

func TestDayBuildsEntries(t *testing.T) {
	first := event("a", "14:00", "15:00", "v1")
	first.BandID = ptr("b1")
	second := event("b", "15:10", "16:00", "v2")
	second.Title = "Late show"
	second.BandID = ptr("gone")

	fs := &fakeStore{
		events: []*models.Event{second, first},
		venues: map[string]*models.Venue{"v1": geocodedVenue("v1", 1, 1), "v2": geocodedVenue("v2", 2, 2)},
		bands:  map[string]*models.Band{"b1": {ID: "b1", OrgID: "org-1", Name: "The Roadies"}},
	}
	svc := newTestService(fs, &fakeRouter{leg: maps.Leg{Minutes: 25, Km: 18.4}})

	if _, err := svc.Recompute(context.Background(), "org-1", "2025-03-01"); err != nil {
		t.Fatalf("Recompute error: %v", err)
	}

	view, err := svc.Day(context.Background(), "org-1", "2025-03-01")
	if err != nil {
		t.Fatalf("Day error: %v", err)
	}
	if view.Date != "2025-03-01" || len(view.Events) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}

	a := view.Events[0]
	if a.ID != "a" || a.Title != DefaultTitle {
		t.Fatalf("unexpected first entry %+v", a)
	}
	if a.Band.Name == nil || *a.Band.Name != "The Roadies" {
		t.Fatalf("expected band name, got %+v", a.Band)
	}
	if a.Venue.Address == nil || *a.Venue.Address != "v1 street" {
		t.Fatalf("expected venue address, got %+v", a.Venue)
	}
	if a.ToNext.Minutes == nil || *a.ToNext.Minutes != 25 || a.ToNext.UpdatedAt == nil || !a.ToNext.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected toNext %+v", a.ToNext)
	}
	if a.Alert == nil || *a.Alert != "window of 10 min is shorter than the 25 min drive (delay risk)" {
		t.Fatalf("unexpected alert %v", a.Alert)
	}

	b := view.Events[1]
	if b.Title != "Late show" || b.Alert != nil {
		t.Fatalf("unexpected last entry %+v", b)
	}
	if b.Band.ID == nil || *b.Band.ID != "gone" || b.Band.Name != nil {
		t.Fatalf("expected unresolved band ref, got %+v", b.Band)
	}
	if b.ToNext.Minutes != nil || b.ToNext.Km != nil || b.ToNext.Error != nil {
		t.Fatalf("expected terminal leg, got %+v", b.ToNext)
	}
}

func TestDayNeverRoutes(t *testing.T) {
	fs := &fakeStore{
		events: []*models.Event{event("a", "10:00", "", "v1"), event("b", "12:00", "", "v2")},
		venues: map[string]*models.Venue{"v1": geocodedVenue("v1", 1, 1), "v2": geocodedVenue("v2", 2, 2)},
	}
	r := &fakeRouter{}

	view, err := newTestService(fs, r).Day(context.Background(), "org-1", "2025-03-01")
	if err != nil {
		t.Fatalf("Day error: %v", err)
	}
	if len(r.calls) != 0 {
		t.Fatal("Day must not call the router")
	}
	if view.Events[0].Alert != nil || view.Events[0].ToNext.UpdatedAt != nil {
		t.Fatalf("expected empty leg before any recompute, got %+v", view.Events[0])
	}
}

func TestDayEmpty(t *testing.T) {
	view, err := newTestService(&fakeStore{}, &fakeRouter{}).Day(context.Background(), "org-1", "2025-03-01")
	if err != nil {
		t.Fatalf("Day error: %v", err)
	}
	if view.Events == nil || len(view.Events) != 0 {
		t.Fatalf("expected empty non-nil events, got %#v", view.Events)
	}
}
