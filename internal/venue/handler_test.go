package venue

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"safesound/internal/jwtauth"
	"safesound/internal/platform/web"
)

func floatp(v float64) *float64 { return &v }

type fixture struct {
	store  *MemoryStore
	jwt    *jwtauth.Service
	router chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()
	jwtSvc := jwtauth.NewService("test-key", time.Hour)
	h := NewHandler(store, jwtSvc, logger)

	require.NoError(t, store.Add(t.Context(), Venue{Name: "The Crown", City: "London", Lat: floatp(51.5), Long: floatp(-0.12)}))
	require.NoError(t, store.Add(t.Context(), Venue{Name: "Crown Court Club", City: "Leeds", Lat: floatp(53.8), Long: floatp(-1.55)}))
	require.NoError(t, store.Add(t.Context(), Venue{Name: "Warehouse 23", City: "Leeds", Lat: floatp(53.79), Long: floatp(-1.54)}))
	require.NoError(t, store.SetActive(t.Context(), 3, false))

	router := chi.NewRouter()
	h.Register(router)
	return &fixture{store: store, jwt: jwtSvc, router: router}
}

func (f *fixture) userToken(t *testing.T) string {
	t.Helper()
	token, err := f.jwt.GenerateUserToken("jane@example.com")
	require.NoError(t, err)
	return token
}

func (f *fixture) policeToken(t *testing.T) string {
	t.Helper()
	token, err := f.jwt.GeneratePoliceToken(4410, false)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, web.Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	var env web.Envelope
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func venueNames(t *testing.T, env web.Envelope) []string {
	t.Helper()
	raw, ok := env.Generic.([]any)
	require.True(t, ok)
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		v, ok := item.(map[string]any)
		require.True(t, ok)
		names = append(names, v["venue_name"].(string))
	}
	return names
}

func TestUsersSeeOnlyActiveVenues(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/venues", f.userToken(t), nil)
	require.True(t, env.Success)
	require.Equal(t, []string{"Crown Court Club", "The Crown"}, venueNames(t, env))
}

func TestPoliceSeeEveryVenue(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/police/venues", f.policeToken(t), nil)
	require.True(t, env.Success)
	require.Equal(t, []string{"Crown Court Club", "Warehouse 23", "The Crown"}, venueNames(t, env))

	rec, _ := f.do(t, http.MethodGet, "/police/venues", f.userToken(t), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/venues/name/crown", f.userToken(t), nil)
	require.Equal(t, []string{"Crown Court Club", "The Crown"}, venueNames(t, env))

	_, env = f.do(t, http.MethodGet, "/venues/city/leeds", f.userToken(t), nil)
	require.Equal(t, []string{"Crown Court Club"}, venueNames(t, env))

	_, env = f.do(t, http.MethodGet, "/police/venues/city/leeds", f.policeToken(t), nil)
	require.Equal(t, []string{"Crown Court Club", "Warehouse 23"}, venueNames(t, env))

	_, env = f.do(t, http.MethodGet, "/venues/name/nowhere", f.userToken(t), nil)
	require.False(t, env.Success)
	require.Equal(t, "No venues found", env.Message)
}

func TestVenueByID(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/venues/id/1", f.userToken(t), nil)
	require.True(t, env.Success)
	v, ok := env.Generic.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "The Crown", v["venue_name"])

	_, env = f.do(t, http.MethodGet, "/venues/id/99", f.userToken(t), nil)
	require.Equal(t, "No venues found", env.Message)
}

func TestAddVenue(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodPost, "/venues/add", f.policeToken(t),
		Venue{Name: "Corn Exchange", City: "Leeds", Lat: floatp(53.8), Long: floatp(-1.54)})
	require.True(t, env.Success)
	require.Equal(t, "Venue created", env.Message)

	_, env = f.do(t, http.MethodPost, "/venues/add", f.policeToken(t), Venue{Name: "No Coordinates", City: "Leeds"})
	require.Equal(t, "Badly formatted request", env.Message)

	rec, _ := f.do(t, http.MethodPost, "/venues/add", f.userToken(t), Venue{})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActivateDeactivateVenue(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodPost, "/venues/deactivate/1", f.policeToken(t), nil)
	require.Equal(t, "Venue deactivated", env.Message)
	_, env = f.do(t, http.MethodGet, "/venues", f.userToken(t), nil)
	require.Equal(t, []string{"Crown Court Club"}, venueNames(t, env))

	_, env = f.do(t, http.MethodPost, "/venues/activate/1", f.policeToken(t), nil)
	require.Equal(t, "Venue activated", env.Message)

	_, env = f.do(t, http.MethodPost, "/venues/activate/99", f.policeToken(t), nil)
	require.Equal(t, "Venue does not exist", env.Message)
}

func TestSeverityAggregates(t *testing.T) {
	f := newFixture(t)
	f.store.RecordSeverity(1, 8)
	f.store.RecordSeverity(1, 4)
	f.store.RecordSeverity(3, 9)

	_, env := f.do(t, http.MethodGet, "/venues/severity/1", f.userToken(t), nil)
	require.True(t, env.Success)
	sev, ok := env.Generic.(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 6.0, sev["average_severity"], 0.001)

	_, env = f.do(t, http.MethodGet, "/venues/severity/2", f.userToken(t), nil)
	require.Equal(t, "No severity on this venue", env.Message)

	// Venue 3 is deactivated so its aggregate is excluded.
	_, env = f.do(t, http.MethodGet, "/venues/severity", f.userToken(t), nil)
	require.True(t, env.Success)
	all, ok := env.Generic.(map[string]any)
	require.True(t, ok)
	require.Len(t, all, 1)
	require.Contains(t, all, "1")
}
