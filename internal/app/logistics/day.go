package logistics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tourlogistics/internal/logging"
	"tourlogistics/internal/models"
	"tourlogistics/internal/schedule"
)

// DefaultTitle is shown for events without a title.
const DefaultTitle = "Show"

// defaultShowLength is assumed when an event has no usable end time.
const defaultShowLength = 60

// DayView is the ordered itinerary of one day.
type DayView struct {
	Date   string     `json:"date"`
	Events []DayEntry `json:"events"`
}

// DayEntry is one event of the itinerary with its outbound leg.
type DayEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Status    string   `json:"status"`
	Band      BandRef  `json:"band"`
	Venue     VenueRef `json:"venue"`
	ToNext    ToNext   `json:"toNext"`
	Alert     *string  `json:"alert"`
}

// BandRef is the band summary shown on an entry.
type BandRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// VenueRef is the venue summary shown on an entry.
type VenueRef struct {
	ID      *string `json:"id"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// ToNext mirrors the stored logistics record.
type ToNext struct {
	Km            *float64   `json:"km"`
	Minutes       *int       `json:"minutes"`
	ToNextVenueID *string    `json:"toNextVenueId"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	Error         *string    `json:"error"`
}

// Day builds the itinerary of a day from stored logistics. It never
// calls the routing provider.
func (s *service) Day(ctx context.Context, orgID, date string) (DayView, error) {
	view := DayView{Date: date, Events: []DayEntry{}}
	if err := ctx.Err(); err != nil {
		return view, err
	}

	events, err := s.store.ListEventsByDate(ctx, orgID, date)
	if err != nil {
		return view, fmt.Errorf("load events: %w", err)
	}
	schedule.SortEvents(events)

	venues := s.loadVenues(ctx, orgID, events)

	bands, err := s.store.ListBandsByIDs(ctx, orgID, bandRefs(events))
	if err != nil {
		return view, fmt.Errorf("load bands: %w", err)
	}

	for i, ev := range events {
		entry := DayEntry{
			ID:        ev.ID,
			Title:     ev.Title,
			Date:      ev.Date,
			StartTime: ev.StartTime,
			EndTime:   ev.EndTime,
			Status:    ev.Status,
			Band:      BandRef{ID: ev.BandID},
			Venue:     VenueRef{ID: ev.VenueID},
		}
		if entry.Title == "" {
			entry.Title = DefaultTitle
		}
		if ev.BandID != nil {
			if b, ok := bands[*ev.BandID]; ok {
				entry.Band.Name = strPtr(b.Name)
			}
		}
		if v, ok := venues[venueRef(ev)]; ok {
			entry.Venue.Name = strPtr(v.Name)
			entry.Venue.Address = strPtr(v.Address)
		}
		if l := ev.Logistics; l != nil {
			updated := l.ToNextUpdatedAt
			entry.ToNext = ToNext{
				Km:            l.ToNextKm,
				Minutes:       l.ToNextMinutes,
				ToNextVenueID: l.ToNextVenueID,
				UpdatedAt:     &updated,
				Error:         l.Error,
			}
		}
		if i+1 < len(events) {
			entry.Alert = Alert(ev, events[i+1])
		}

		view.Events = append(view.Events, entry)
	}

	logging.FromContext(ctx).Info().
		Str("org_id", orgID).
		Str("date", date).
		Int("count", len(view.Events)).
		Msg("day logistics served")

	return view, nil
}

// Alert returns a delay-risk message when the stored drive from cur is
// longer than the gap before next starts. It returns nil when no drive
// time is stored or the gap is wide enough.
func Alert(cur, next *models.Event) *string {
	if cur.Logistics == nil || cur.Logistics.ToNextMinutes == nil {
		return nil
	}
	minutes := *cur.Logistics.ToNextMinutes
	window := Window(cur, next)
	if minutes <= window {
		return nil
	}
	msg := fmt.Sprintf("window of %d min is shorter than the %d min drive (delay risk)", window, minutes)
	return &msg
}

// Window is the number of minutes between the end of cur and the start of
// next, never negative.
func Window(cur, next *models.Event) int {
	window := schedule.ParseHHMM(next.StartTime) - endMinute(cur)
	if window < 0 {
		return 0
	}
	return window
}

// endMinute is the parsed end time, or start plus an hour when the end
// time is missing or parses to midnight.
func endMinute(e *models.Event) int {
	if end := schedule.ParseHHMM(e.EndTime); end != 0 {
		return end
	}
	return schedule.ParseHHMM(e.StartTime) + defaultShowLength
}

func bandRefs(events []*models.Event) []string {
	set := make(map[string]struct{})
	for _, ev := range events {
		if ev.BandID != nil && *ev.BandID != "" {
			set[*ev.BandID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
