package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"tourlogistics/internal/clock"
	"tourlogistics/internal/models"
)

//go:embed seed/demo_tour.yaml
var demoTourYAML []byte

type demoTour struct {
	OrgID  string      `yaml:"orgId"`
	Bands  []demoBand  `yaml:"bands"`
	Venues []demoVenue `yaml:"venues"`
	Events []demoEvent `yaml:"events"`
}

type demoBand struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type demoVenue struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Address    string   `yaml:"address"`
	City       string   `yaml:"city"`
	State      string   `yaml:"state"`
	PostalCode string   `yaml:"postalCode"`
	Lat        *float64 `yaml:"lat"`
	Lng        *float64 `yaml:"lng"`
}

type demoEvent struct {
	Title     string `yaml:"title"`
	Day       int    `yaml:"day"`
	StartTime string `yaml:"startTime"`
	EndTime   string `yaml:"endTime"`
	Order     *int   `yaml:"order"`
	Venue     string `yaml:"venue"`
	Band      string `yaml:"band"`
}

type seedStore interface {
	ListVenues(ctx context.Context, orgID string) ([]*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	CreateBand(ctx context.Context, band *models.Band) (*models.Band, error)
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
}

func parseDemoTour(raw []byte) (demoTour, error) {
	var tour demoTour
	if err := yaml.Unmarshal(raw, &tour); err != nil {
		return demoTour{}, fmt.Errorf("parse demo tour: %w", err)
	}
	if tour.OrgID == "" {
		return demoTour{}, fmt.Errorf("parse demo tour: orgId is required")
	}
	return tour, nil
}

// bootstrapDemoTour seeds the demo org unless it already has venues.
func bootstrapDemoTour(ctx context.Context, dataStore seedStore, clk clock.Clock) error {
	tour, err := parseDemoTour(demoTourYAML)
	if err != nil {
		return err
	}
	return seedTour(ctx, dataStore, clk, tour)
}

func seedTour(ctx context.Context, dataStore seedStore, clk clock.Clock, tour demoTour) error {
	existing, err := dataStore.ListVenues(ctx, tour.OrgID)
	if err != nil {
		return fmt.Errorf("check demo venues: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	bandIDs := make(map[string]string, len(tour.Bands))
	for _, b := range tour.Bands {
		created, err := dataStore.CreateBand(ctx, &models.Band{OrgID: tour.OrgID, Name: b.Name})
		if err != nil {
			return fmt.Errorf("seed band %s: %w", b.Key, err)
		}
		bandIDs[b.Key] = created.ID
	}

	venueIDs := make(map[string]string, len(tour.Venues))
	for _, v := range tour.Venues {
		created, err := dataStore.CreateVenue(ctx, &models.Venue{
			OrgID:      tour.OrgID,
			Name:       v.Name,
			Address:    v.Address,
			City:       v.City,
			State:      v.State,
			PostalCode: v.PostalCode,
			Lat:        v.Lat,
			Lng:        v.Lng,
		})
		if err != nil {
			return fmt.Errorf("seed venue %s: %w", v.Key, err)
		}
		venueIDs[v.Key] = created.ID
	}

	today := clk.Now()
	for i, e := range tour.Events {
		event := &models.Event{
			OrgID:     tour.OrgID,
			Title:     e.Title,
			Date:      today.AddDate(0, 0, e.Day).Format("2006-01-02"),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Order:     e.Order,
		}
		if id, ok := venueIDs[e.Venue]; ok {
			event.VenueID = &id
		}
		if id, ok := bandIDs[e.Band]; ok {
			event.BandID = &id
		}
		if _, err := dataStore.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("seed event %d: %w", i, err)
		}
	}

	log.Info().
		Str("org_id", tour.OrgID).
		Int("venues", len(tour.Venues)).
		Int("events", len(tour.Events)).
		Msg("demo tour seeded")

	return nil
}
