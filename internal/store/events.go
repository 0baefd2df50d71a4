package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"tourlogistics/internal/models"
)

const eventColumns = `
		id, org_id, title, to_char(event_date, 'YYYY-MM-DD'), start_time, end_time,
		sort_order, venue_id, band_id, status, logistics, created_at, updated_at`

// CreateEvent adds a new event to an org's calendar.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.ID = s.newID()
	event.Title = strings.TrimSpace(event.Title)
	if event.Status == "" {
		event.Status = "scheduled"
	}

	var order sql.NullInt64
	if event.Order != nil {
		order = sql.NullInt64{Int64: int64(*event.Order), Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events (id, org_id, title, event_date, start_time, end_time,
		                    sort_order, venue_id, band_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, event.ID, event.OrgID, event.Title, event.Date, event.StartTime, event.EndTime,
		order, nullString(event.VenueID), nullString(event.BandID), event.Status,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return event, nil
}

// ListEventsByDate returns an org's events for one day in retrieval order
// (creation time, then id). Callers apply the schedule ordering.
func (s *Store) ListEventsByDate(ctx context.Context, orgID, date string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+eventColumns+`
		FROM events
		WHERE org_id = $1 AND event_date = $2
		ORDER BY created_at ASC, id ASC
	`, orgID, date)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// UpdateEventLogistics replaces the logistics record of one event.
func (s *Store) UpdateEventLogistics(ctx context.Context, orgID, eventID string, logistics models.Logistics) error {
	payload, err := json.Marshal(logistics)
	if err != nil {
		return fmt.Errorf("encode logistics: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET logistics = $1::jsonb, updated_at = CURRENT_TIMESTAMP
		WHERE org_id = $2 AND id = $3
	`, string(payload), orgID, eventID)
	if err != nil {
		return fmt.Errorf("update logistics: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update logistics: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// DeleteEvent removes an event
func (s *Store) DeleteEvent(ctx context.Context, orgID, eventID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE org_id = $1 AND id = $2`, orgID, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// ListScheduledDays returns every (org, date) pair with at least one event
// in the half-open range [from, to).
func (s *Store) ListScheduledDays(ctx context.Context, from, to string) ([]models.DayKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT org_id, to_char(event_date, 'YYYY-MM-DD')
		FROM events
		WHERE event_date >= $1 AND event_date < $2
		GROUP BY org_id, event_date
		ORDER BY event_date ASC, org_id ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("select scheduled days: %w", err)
	}
	defer rows.Close()

	var days []models.DayKey
	for rows.Next() {
		var d models.DayKey
		if err := rows.Scan(&d.OrgID, &d.Date); err != nil {
			return nil, fmt.Errorf("scan scheduled day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scheduled days: %w", err)
	}

	return days, nil
}

func validateEvent(e *models.Event) error {
	if err := requireOrg(e.OrgID, ErrInvalidEvent); err != nil {
		return err
	}

	switch {
	case !ValidDate(e.Date):
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEvent)
	case !validWallClock(e.StartTime):
		return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidEvent)
	case !validWallClock(e.EndTime):
		return fmt.Errorf("%w: endTime must be HH:MM", ErrInvalidEvent)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(scanner rowScanner) (*models.Event, error) {
	var (
		e             models.Event
		order         sql.NullInt64
		venueID       sql.NullString
		bandID        sql.NullString
		logisticsJSON []byte
	)

	if err := scanner.Scan(
		&e.ID, &e.OrgID, &e.Title, &e.Date, &e.StartTime, &e.EndTime,
		&order, &venueID, &bandID, &e.Status, &logisticsJSON, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	if order.Valid {
		v := int(order.Int64)
		e.Order = &v
	}
	e.VenueID = stringPtr(venueID)
	e.BandID = stringPtr(bandID)

	if len(logisticsJSON) > 0 {
		var l models.Logistics
		if err := json.Unmarshal(logisticsJSON, &l); err != nil {
			return nil, fmt.Errorf("decode logistics for event %s: %w", e.ID, err)
		}
		e.Logistics = &l
	}

	return &e, nil
}
