package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

// NylasAdapter implements CalendarProvider against the Nylas v3 availability
// endpoint.
type NylasAdapter struct {
	apiKey  string
	apiURI  string
	grantID string
	client  *http.Client
	now     func() time.Time
}

// NewNylasAdapter creates a Nylas calendar adapter.
func NewNylasAdapter(apiKey, apiURI, grantID string) providers.CalendarProvider {
	return &NylasAdapter{
		apiKey:  apiKey,
		apiURI:  apiURI,
		grantID: grantID,
		client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

type nylasParticipant struct {
	Email     string           `json:"email"`
	GrantID   string           `json:"grant_id,omitempty"`
	OpenHours []nylasOpenHours `json:"open_hours"`
}

type nylasOpenHours struct {
	Days     []int    `json:"days"`
	Timezone string   `json:"timezone"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Exdates  []string `json:"exdates"`
}

type nylasAvailabilityRequest struct {
	Participants      []nylasParticipant     `json:"participants"`
	StartTime         int64                  `json:"start_time"`
	EndTime           int64                  `json:"end_time"`
	DurationMinutes   int                    `json:"duration_minutes"`
	IntervalMinutes   int                    `json:"interval_minutes"`
	RoundTo           int                    `json:"round_to"`
	AvailabilityRules map[string]interface{} `json:"availability_rules"`
}

// Availability fetches open one-hour slots for the given participants between
// now and the end of the week. Timestamps are rounded to 5-minute boundaries
// per the Nylas API contract.
func (a *NylasAdapter) Availability(ctx context.Context, participants []string) ([]entities.AvailabilitySlot, error) {
	if len(participants) == 0 {
		return nil, nil
	}

	start := roundToFiveMinutes(a.now().UTC())
	end := endOfWeek(start)

	body := nylasAvailabilityRequest{
		Participants:    buildParticipants(participants, a.grantID),
		StartTime:       start.Unix(),
		EndTime:         end.Unix(),
		DurationMinutes: 60,
		IntervalMinutes: 30,
		RoundTo:         15,
		AvailabilityRules: map[string]interface{}{
			"availability_method": "max-availability",
			"buffer": map[string]int{
				"before": 15,
				"after":  15,
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.apiURI+"/v3/calendars/availability", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nylas api error: status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			TimeSlots []struct {
				StartTime int64    `json:"start_time"`
				EndTime   int64    `json:"end_time"`
				Emails    []string `json:"emails"`
			} `json:"time_slots"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	slots := make([]entities.AvailabilitySlot, 0, len(result.Data.TimeSlots))
	for _, slot := range result.Data.TimeSlots {
		emails := slot.Emails
		if len(emails) == 0 {
			emails = participants
		}
		slots = append(slots, entities.AvailabilitySlot{
			Start:  time.Unix(slot.StartTime, 0).UTC(),
			End:    time.Unix(slot.EndTime, 0).UTC(),
			Emails: emails,
		})
	}

	return slots, nil
}

func buildParticipants(emails []string, grantID string) []nylasParticipant {
	participants := make([]nylasParticipant, len(emails))
	for i, email := range emails {
		p := nylasParticipant{
			Email: email,
			OpenHours: []nylasOpenHours{{
				Days:     []int{0, 1, 2, 3, 4},
				Timezone: "America/Los_Angeles",
				Start:    "9:00",
				End:      "17:00",
				Exdates:  []string{},
			}},
		}
		// Only the calling account carries the grant.
		if i == 0 {
			p.GrantID = grantID
		}
		participants[i] = p
	}
	return participants
}

func roundToFiveMinutes(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	remainder := t.Minute() % 5
	t = t.Add(-time.Duration(remainder) * time.Minute)
	if remainder >= 3 {
		t = t.Add(5 * time.Minute)
	}
	return t
}

func endOfWeek(t time.Time) time.Time {
	daysUntilSunday := (7 - int(t.Weekday())) % 7
	sunday := t.AddDate(0, 0, daysUntilSunday)
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 55, 0, 0, time.UTC)
}
