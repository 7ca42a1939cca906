package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Event represents a candidate free-event record surfaced to the caller
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Price       string `json:"price"`
	Category    string `json:"category,omitempty"`
	IsDropIn    bool   `json:"is_dropin"`
}

// EventID derives a stable event identifier from the event URL, falling back
// to the title when the URL is absent. Identical URLs always produce the same
// id, which is what downstream deduplication relies on.
func EventID(url, title string) string {
	key := strings.TrimSpace(url)
	if key == "" {
		key = strings.TrimSpace(title)
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}
