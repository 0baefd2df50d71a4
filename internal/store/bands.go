package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"tourlogistics/internal/models"
)

// CreateBand adds a band to an org's roster.
func (s *Store) CreateBand(ctx context.Context, band *models.Band) (*models.Band, error) {
	if err := requireOrg(band.OrgID, ErrInvalidBand); err != nil {
		return nil, err
	}
	band.Name = strings.TrimSpace(band.Name)
	if band.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidBand)
	}

	band.ID = s.newID()

	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO bands (id, org_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, band.ID, band.OrgID, band.Name).Scan(&band.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert band: %w", err)
	}

	return band, nil
}

// ListBands returns every band of an org ordered by name.
func (s *Store) ListBands(ctx context.Context, orgID string) ([]*models.Band, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, name, created_at
		FROM bands
		WHERE org_id = $1
		ORDER BY name ASC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("select bands: %w", err)
	}
	defer rows.Close()

	var bands []*models.Band
	for rows.Next() {
		var b models.Band
		if err := rows.Scan(&b.ID, &b.OrgID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		bands = append(bands, &b)
	}

	return bands, rows.Err()
}

// ListBandsByIDs loads the given bands of an org keyed by id. Unknown ids are
// simply absent from the result.
func (s *Store) ListBandsByIDs(ctx context.Context, orgID string, ids []string) (map[string]*models.Band, error) {
	out := make(map[string]*models.Band, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, name, created_at
		FROM bands
		WHERE org_id = $1 AND id = ANY($2)
	`, orgID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select bands by id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Band
		if err := rows.Scan(&b.ID, &b.OrgID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		out[b.ID] = &b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bands: %w", err)
	}

	return out, nil
}
