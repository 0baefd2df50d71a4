package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tourlogistics/internal/models"
)

const venueColumns = `
		id, org_id, name, address, city, state, postal_code, lat, lng,
		created_at, updated_at`

// CreateVenue adds a new venue for an org
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := requireOrg(venue.OrgID, ErrInvalidVenue); err != nil {
		return nil, err
	}
	venue.Name = strings.TrimSpace(venue.Name)
	venue.Address = strings.TrimSpace(venue.Address)
	if venue.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidVenue)
	}

	venue.ID = s.newID()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (id, org_id, name, address, city, state, postal_code, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, venue.ID, venue.OrgID, venue.Name, venue.Address, venue.City, venue.State,
		venue.PostalCode, venue.Lat, venue.Lng,
	).Scan(&venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert venue: %w", err)
	}

	return venue, nil
}

// ListVenues returns all venues for an org
func (s *Store) ListVenues(ctx context.Context, orgID string) ([]*models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+venueColumns+`
		FROM venues
		WHERE org_id = $1
		ORDER BY name ASC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}

	return venues, rows.Err()
}

// GetVenue retrieves a single venue of an org
func (s *Store) GetVenue(ctx context.Context, orgID, id string) (*models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT`+venueColumns+`
		FROM venues
		WHERE org_id = $1 AND id = $2
	`, orgID, id)

	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}

	return v, nil
}

// UpdateVenueLocation stores geocoding output on a venue. Empty structured
// parts leave the existing values untouched.
func (s *Store) UpdateVenueLocation(ctx context.Context, orgID, id string, loc models.VenueLocation) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE venues
		SET lat = $1, lng = $2,
		    city = COALESCE(NULLIF($3, ''), city),
		    state = COALESCE(NULLIF($4, ''), state),
		    postal_code = COALESCE(NULLIF($5, ''), postal_code),
		    updated_at = CURRENT_TIMESTAMP
		WHERE org_id = $6 AND id = $7
	`, loc.Lat, loc.Lng, loc.City, loc.State, loc.PostalCode, orgID, id)
	if err != nil {
		return fmt.Errorf("update venue location: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update venue location: %w", err)
	}
	if affected == 0 {
		return ErrVenueNotFound
	}

	return nil
}

func scanVenue(scanner rowScanner) (*models.Venue, error) {
	var (
		v        models.Venue
		lat, lng sql.NullFloat64
	)

	err := scanner.Scan(
		&v.ID, &v.OrgID, &v.Name, &v.Address, &v.City, &v.State, &v.PostalCode,
		&lat, &lng, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan venue: %w", err)
	}

	v.Lat = floatPtr(lat)
	v.Lng = floatPtr(lng)
	return &v, nil
}
