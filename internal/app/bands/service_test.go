package bands

import (
	"context"
	"errors"
	"testing"

	"tourlogistics/internal/models"
)

type stubStore struct {
	created *models.Band
	bands   []*models.Band
}

func (s *stubStore) CreateBand(ctx context.Context, band *models.Band) (*models.Band, error) {
	s.created = band
	return band, nil
}

func (s *stubStore) ListBands(ctx context.Context, orgID string) ([]*models.Band, error) {
	return s.bands, nil
}

func TestCreateDelegatesToStore(t *testing.T) {
	st := &stubStore{}
	band := &models.Band{OrgID: "org-1", Name: "The Roadies"}

	got, err := New(st).Create(context.Background(), band)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got != band || st.created != band {
		t.Fatal("expected band to be passed through to the store")
	}
}

func TestListHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(&stubStore{}).List(ctx, "org-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
