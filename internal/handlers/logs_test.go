package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"room_climate/internal/models"
	"room_climate/internal/repository"
	"room_climate/internal/service"

	"github.com/stretchr/testify/require"
)

func getEvents(t *testing.T, repo *fakeEventRepo, query string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(&service.Service{EventLog: service.NewEventLogService(repo)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events"+query, nil))
	return w
}

func TestEvents_FiltersBySystemAndType(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeEventRepo{events: []models.ClimateEvent{
		{EventID: "e1", OccurredAt: at, Type: models.EventConflict, System: models.SystemCooling, Description: "cooling rejected while heating"},
	}}

	w := getEvents(t, repo, "?type=conflict&system=COOLING&from=2025-03-01T11:00:00Z")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Count  int                   `json:"count"`
		Events []models.ClimateEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	require.Equal(t, models.SystemCooling, out.Events[0].System)

	require.Equal(t, repository.EventQuery{
		From:   time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC),
		Type:   models.EventConflict,
		System: models.SystemCooling,
	}, *repo.last)
}

func TestEvents_RejectsUnknownValues(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{name: "unknown type", query: "?type=MODE_CHANGE"},
		{name: "unknown system", query: "?system=furnace"},
		{name: "telemetry with system", query: "?type=telemetry&system=heating"},
		{name: "bad from", query: "?from=yesterday"},
		{name: "bad to", query: "?to=2025-13-01"},
		{name: "reversed range", query: "?from=2025-09-02&to=2025-09-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeEventRepo{}
			w := getEvents(t, repo, tc.query)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.Nil(t, repo.last, "repository must not be queried")
		})
	}
}

func TestEvents_DateOnlyToCoversWholeDay(t *testing.T) {
	repo := &fakeEventRepo{}
	w := getEvents(t, repo, "?to=2025-09-01")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"count":0,"events":[]}`, w.Body.String())

	want := time.Date(2025, time.September, 1, 23, 59, 59, 999999999, time.UTC)
	require.True(t, repo.last.To.Equal(want), "to=%v; want %v", repo.last.To, want)
}

func TestEvents_RepositoryFailure(t *testing.T) {
	w := getEvents(t, &fakeEventRepo{err: errors.New("db down")}, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"failed to load events"}`, w.Body.String())
}

func TestEvents_RouteAbsentWithoutJournal(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
