package crime

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

func intp(v int) *int { return &v }

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

	require.NoError(t, store.Add(t.Context(), Crime{Name: "Assault", Description: "Physical attack", Severity: intp(8)}))
	require.NoError(t, store.Add(t.Context(), Crime{Name: "Theft", Description: "Taking property", Severity: intp(4)}))
	require.NoError(t, store.SetActive(t.Context(), 2, false))

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
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	var env web.Envelope
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func crimeNames(t *testing.T, env web.Envelope) []string {
	t.Helper()
	raw, ok := env.Generic.([]any)
	require.True(t, ok)
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		c, ok := item.(map[string]any)
		require.True(t, ok)
		names = append(names, c["crime_name"].(string))
	}
	return names
}

func TestUsersSeeOnlyActiveCrimes(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/user/crimes", f.userToken(t), nil)
	require.True(t, env.Success)
	require.Equal(t, []string{"Assault"}, crimeNames(t, env))
}

func TestPoliceSeeEveryCrime(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/police/crimes", f.policeToken(t), nil)
	require.Equal(t, []string{"Assault", "Theft"}, crimeNames(t, env))

	rec, _ := f.do(t, http.MethodGet, "/police/crimes", f.userToken(t), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCrimeByID(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodGet, "/crimes/id/1", f.userToken(t), nil)
	require.True(t, env.Success)
	c, ok := env.Generic.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Assault", c["crime_name"])
	require.InDelta(t, 8, c["crime_severity"], 0.001)

	_, env = f.do(t, http.MethodGet, "/crimes/id/99", f.userToken(t), nil)
	require.Equal(t, "No crimes found", env.Message)
}

func TestAddCrime(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodPost, "/crimes/add", f.policeToken(t),
		Crime{Name: "Vandalism", Description: "Property damage", Severity: intp(3)})
	require.True(t, env.Success)
	require.Equal(t, "Crime added", env.Message)

	_, env = f.do(t, http.MethodPost, "/crimes/add", f.policeToken(t), Crime{Name: "No Severity", Description: "x"})
	require.Equal(t, "Badly formatted request", env.Message)

	rec, _ := f.do(t, http.MethodPost, "/crimes/add", f.userToken(t), Crime{})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActivateDeactivateCrime(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, http.MethodPost, "/crimes/activate/2", f.policeToken(t), nil)
	require.Equal(t, "Crime activated", env.Message)
	_, env = f.do(t, http.MethodGet, "/user/crimes", f.userToken(t), nil)
	require.Equal(t, []string{"Assault", "Theft"}, crimeNames(t, env))

	_, env = f.do(t, http.MethodPost, "/crimes/deactivate/2", f.policeToken(t), nil)
	require.Equal(t, "Crime deactivated", env.Message)

	_, env = f.do(t, http.MethodPost, "/crimes/deactivate/99", f.policeToken(t), nil)
	require.Equal(t, "Crime does not exist", env.Message)
}
