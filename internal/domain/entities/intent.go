package entities

// ResolvedIntent is the normalized interpretation of a user request. It is
// created once per workflow run and replaced, never mutated, when the
// relaxation engine widens the search.
type ResolvedIntent struct {
	Query             string   `json:"query"`
	Location          string   `json:"location,omitempty"`
	Genres            []string `json:"genres"`
	Date              string   `json:"date,omitempty"`
	RadiusMiles       int      `json:"radius_miles"`
	MaxTransitMinutes int      `json:"max_transit_minutes"`
	TimeWindowDays    int      `json:"time_window_days"`
	Country           string   `json:"country,omitempty"`
	SearchLang        string   `json:"search_lang,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// WithRadius returns a copy of the intent with the radius replaced.
func (i ResolvedIntent) WithRadius(radiusMiles int) ResolvedIntent {
	next := i
	next.Genres = append([]string(nil), i.Genres...)
	next.RadiusMiles = radiusMiles
	return next
}

// HasCoordinates reports whether both latitude and longitude are present.
func (i ResolvedIntent) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}
