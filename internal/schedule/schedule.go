// Package schedule holds the wall-clock parsing and ordering rules shared by
// every code path that needs a day's events in sequence.
package schedule

import (
	"sort"
	"strconv"
	"strings"

	"tourlogistics/internal/models"
)

// DefaultOrder is the order value used when an event has none.
const DefaultOrder = 999999

// ParseHHMM converts "H:MM" or "HH:MM" into minutes since midnight.
// Malformed input yields 0 so bad data never aborts a recompute.
func ParseHHMM(s string) int {
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return h*60 + m
}

// OrderOf returns the explicit order of an event or DefaultOrder.
func OrderOf(e *models.Event) int {
	if e.Order == nil {
		return DefaultOrder
	}
	return *e.Order
}

// SortEvents orders events in place by start minute, then order field.
// Events with identical keys keep their input order.
func SortEvents(events []*models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := ParseHHMM(events[i].StartTime), ParseHHMM(events[j].StartTime)
		if a != b {
			return a < b
		}
		return OrderOf(events[i]) < OrderOf(events[j])
	})
}
