package bands

import (
	"context"

	"tourlogistics/internal/models"
)

// Store defines persistence operations for bands
type Store interface {
	CreateBand(ctx context.Context, band *models.Band) (*models.Band, error)
	ListBands(ctx context.Context, orgID string) ([]*models.Band, error)
}

// Service coordinates band-related operations
type Service interface {
	Create(ctx context.Context, band *models.Band) (*models.Band, error)
	List(ctx context.Context, orgID string) ([]*models.Band, error)
}

type service struct {
	store Store
}

// New constructs a bands Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, band *models.Band) (*models.Band, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateBand(ctx, band)
}

func (s *service) List(ctx context.Context, orgID string) ([]*models.Band, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListBands(ctx, orgID)
}
