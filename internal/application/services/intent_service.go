package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
	"github.com/eventfinder-ai/backend/pkg/config"
)

// Preferences are the caller's saved overrides for intent resolution. Nil
// fields fall back to configured defaults.
type Preferences struct {
	HomeCity          *string  `json:"home_city,omitempty"`
	FavoriteGenres    []string `json:"favorite_genres,omitempty"`
	RadiusMiles       *int     `json:"radius_miles,omitempty"`
	MaxTransitMinutes *int     `json:"max_transit_minutes,omitempty"`
	TimeWindowDays    *int     `json:"time_window_days,omitempty"`
	Country           *string  `json:"country,omitempty"`
	SearchLang        *string  `json:"search_lang,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// IntentService resolves raw input plus optional preferences into a
// ResolvedIntent. Resolution never fails: missing data is absorbed as
// best-effort defaults, and location extraction stays deliberately
// approximate.
type IntentService struct {
	cfg config.WorkflowConfig
	geo providers.GeolocationProvider
}

// NewIntentService creates a new intent service. The geolocation provider is
// optional; without it coordinate enrichment is skipped.
func NewIntentService(cfg config.WorkflowConfig, geo providers.GeolocationProvider) *IntentService {
	return &IntentService{cfg: cfg, geo: geo}
}

// Resolve builds the normalized intent for one request.
func (s *IntentService) Resolve(ctx context.Context, rawInput string, prefs *Preferences) entities.ResolvedIntent {
	intent := entities.ResolvedIntent{
		Query:             rawInput,
		Location:          s.cfg.DefaultHomeCity,
		Genres:            append([]string(nil), s.cfg.DefaultGenres...),
		RadiusMiles:       s.cfg.DefaultRadiusMiles,
		MaxTransitMinutes: s.cfg.DefaultTransitMinutes,
		TimeWindowDays:    s.cfg.DefaultTimeWindowDays,
	}

	if prefs != nil {
		if prefs.HomeCity != nil {
			intent.Location = *prefs.HomeCity
		}
		if len(prefs.FavoriteGenres) > 0 {
			intent.Genres = append([]string(nil), prefs.FavoriteGenres...)
		}
		if prefs.RadiusMiles != nil {
			intent.RadiusMiles = *prefs.RadiusMiles
		}
		if prefs.MaxTransitMinutes != nil {
			intent.MaxTransitMinutes = *prefs.MaxTransitMinutes
		}
		if prefs.TimeWindowDays != nil {
			intent.TimeWindowDays = *prefs.TimeWindowDays
		}
		if prefs.Country != nil {
			intent.Country = *prefs.Country
		}
		if prefs.SearchLang != nil {
			intent.SearchLang = *prefs.SearchLang
		}
		if prefs.Latitude != nil && prefs.Longitude != nil {
			lat, lon := *prefs.Latitude, *prefs.Longitude
			intent.Latitude = &lat
			intent.Longitude = &lon

			// Coordinates without an explicit home city: prefer what the
			// device reports over the configured default.
			if prefs.HomeCity == nil {
				intent.Location = ""
			}
		}
	}

	s.enrichFromCoordinates(ctx, &intent)

	return intent
}

// enrichFromCoordinates fills the location label and country hint from the
// reverse geocoder. Best-effort: any failure leaves the intent untouched.
func (s *IntentService) enrichFromCoordinates(ctx context.Context, intent *entities.ResolvedIntent) {
	if s.geo == nil || !intent.HasCoordinates() {
		return
	}
	if intent.Location != "" && intent.Country != "" {
		return
	}

	address, err := s.geo.ReverseGeocode(ctx, *intent.Latitude, *intent.Longitude)
	if err != nil || address == nil {
		log.Debug().Err(err).Msg("reverse geocode failed; keeping intent defaults")
		return
	}

	if intent.Location == "" {
		switch {
		case address.City != "" && address.State != "":
			intent.Location = address.City + ", " + address.State
		case address.City != "":
			intent.Location = address.City
		case address.FormattedAddress != "":
			intent.Location = address.FormattedAddress
		}
	}
	if intent.Country == "" && address.CountryCode != "" {
		intent.Country = address.CountryCode
	}
}
