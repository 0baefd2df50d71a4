package main

import (
	"net/http"

	"tourlogistics/internal/app/bands"
	"tourlogistics/internal/app/events"
	"tourlogistics/internal/app/logistics"
	"tourlogistics/internal/app/venues"
	"tourlogistics/internal/auth"
	"tourlogistics/internal/config"
	"tourlogistics/internal/http/middleware"
	"tourlogistics/internal/httpapi"
	"tourlogistics/internal/maps"
	"tourlogistics/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, mapsClient *maps.Client, logisticsSvc logistics.Service) (http.Handler, error) {
	authProvider := auth.NewProvider(func() (auth.Verifier, error) {
		return auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	})
	if err := authProvider.EnsureInitialized(); err != nil {
		return nil, err
	}

	venuesSvc := venues.New(dataStore, mapsClient)
	bandsSvc := bands.New(dataStore)

	// Event service (depends on venues service)
	eventsSvc := events.New(dataStore, venuesSvc)

	api := httpapi.New(authProvider, logisticsSvc, venuesSvc, bandsSvc, eventsSvc)

	return middleware.Chain(api.Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	), nil
}
