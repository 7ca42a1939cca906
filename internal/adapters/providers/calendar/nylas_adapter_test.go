package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNylasAdapter_Availability(t *testing.T) {
	var gotBody nylasAvailabilityRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {
				"time_slots": [
					{"start_time": 1766480400, "end_time": 1766484000, "emails": ["user@example.com"]}
				]
			}
		}`))
	}))
	defer server.Close()

	adapter := NewNylasAdapter("nylas-key", server.URL, "grant-123").(*NylasAdapter)
	adapter.now = func() time.Time {
		return time.Date(2026, 8, 25, 10, 2, 30, 0, time.UTC)
	}

	slots, err := adapter.Availability(context.Background(), []string{"user@example.com", "friend@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer nylas-key", gotAuth)

	require.Len(t, gotBody.Participants, 2)
	assert.Equal(t, "grant-123", gotBody.Participants[0].GrantID)
	assert.Empty(t, gotBody.Participants[1].GrantID)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, gotBody.Participants[0].OpenHours[0].Days)

	assert.Equal(t, 60, gotBody.DurationMinutes)
	assert.Equal(t, 30, gotBody.IntervalMinutes)
	assert.Zero(t, gotBody.StartTime%300)
	assert.Zero(t, gotBody.EndTime%300)

	require.Len(t, slots, 1)
	assert.Equal(t, int64(1766480400), slots[0].Start.Unix())
	assert.Equal(t, []string{"user@example.com"}, slots[0].Emails)
}

func TestNylasAdapter_NoParticipants(t *testing.T) {
	adapter := NewNylasAdapter("key", "http://unused", "grant")

	slots, err := adapter.Availability(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestNylasAdapter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewNylasAdapter("bad-key", server.URL, "grant")

	_, err := adapter.Availability(context.Background(), []string{"user@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRoundToFiveMinutes(t *testing.T) {
	tests := []struct {
		minute, second int
		want           int
	}{
		{2, 30, 0},
		{3, 0, 5},
		{7, 59, 5},
		{58, 0, 0},
	}

	for _, tc := range tests {
		in := time.Date(2026, 8, 25, 10, tc.minute, tc.second, 0, time.UTC)
		got := roundToFiveMinutes(in)
		assert.Equal(t, tc.want, got.Minute(), "minute %d rounds to %d", tc.minute, tc.want)
		assert.Zero(t, got.Second())
	}
}

func TestEndOfWeek(t *testing.T) {
	// 2026-08-25 is a Tuesday; the following Sunday is the 30th.
	tuesday := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	end := endOfWeek(tuesday)

	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 30, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 55, end.Minute())
}

func TestMockAdapter_Availability(t *testing.T) {
	adapter := NewMockAdapter()

	slots, err := adapter.Availability(context.Background(), []string{"user@example.com"})

	require.NoError(t, err)
	require.Len(t, slots, 3)
	for _, slot := range slots {
		assert.True(t, slot.End.After(slot.Start))
		assert.Equal(t, []string{"user@example.com"}, slot.Emails)
	}
}
