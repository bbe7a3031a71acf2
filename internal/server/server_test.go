package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/config"
	"github.com/sells-group/prospector-cli/internal/geo"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/store"
)

// fakeStore serves canned sessions and records the filters it was asked for.
type fakeStore struct {
	sessions   []model.Session
	lastFilter store.SessionFilter
	err        error
}

func (f *fakeStore) CreateSession(ctx context.Context, sess model.Session) (*model.Session, error) {
	return &sess, nil
}

func (f *fakeStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) ListSessions(ctx context.Context, filter store.SessionFilter) ([]model.Session, error) {
	f.lastFilter = filter
	return f.sessions, f.err
}

func (f *fakeStore) UpdateSessionStatus(ctx context.Context, id string, status model.SessionStatus) error {
	return nil
}

func (f *fakeStore) ReplaceRecords(ctx context.Context, id string, records []model.Record) error {
	return nil
}

func (f *fakeStore) DeleteSession(ctx context.Context, id string) error { return nil }
func (f *fakeStore) Migrate(ctx context.Context) error                  { return nil }
func (f *fakeStore) Close() error                                       { return nil }

func sampleSessions() []model.Session {
	return []model.Session{
		{
			ID: "s1", Date: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
			Category: "Pizza", City: "Paris",
			Records: []model.Record{
				{LocalID: 1, Name: "Chez Luigi", City: "Paris", Phone: "0148300000",
					Website: "https://chezluigi.fr", Rating: 4.5, ReviewCount: 120},
				{LocalID: 2, Name: "Kebab du Coin", City: "Paris", Phone: "0148300001",
					Rating: 4.5, ReviewCount: 120},
			},
		},
	}
}

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	srv := New(st, geo.DefaultHierarchy(), config.ServerConfig{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t, &fakeStore{})

	var body map[string]string
	resp := getJSON(t, ts.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Cities(t *testing.T) {
	fs := &fakeStore{sessions: sampleSessions()}
	ts := newTestServer(t, fs)

	var cities []model.CityAggregate
	resp := getJSON(t, ts.URL+"/api/cities?city=Paris", &cities)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Paris", fs.lastFilter.City)
	require.Len(t, cities, 1)
	assert.Equal(t, "Paris", cities[0].City)
	assert.Equal(t, 2, cities[0].TotalEstablishments)
}

func TestServer_Types(t *testing.T) {
	ts := newTestServer(t, &fakeStore{sessions: sampleSessions()})

	var types []model.TypeAggregate
	resp := getJSON(t, ts.URL+"/api/cities/Paris/types", &types)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, types, 1)
	assert.Equal(t, "Pizza", types[0].Category)
}

func TestServer_Regions(t *testing.T) {
	ts := newTestServer(t, &fakeStore{sessions: sampleSessions()})

	var regions []model.RegionAggregate
	resp := getJSON(t, ts.URL+"/api/regions", &regions)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, regions, len(geo.DefaultHierarchy()))

	var paris *model.RegionAggregate
	for i := range regions {
		if regions[i].Code == "75" {
			paris = &regions[i]
		}
	}
	require.NotNil(t, paris)
	assert.True(t, paris.HasData)
	assert.Equal(t, 2, paris.TotalEstablishments)
}

func TestServer_Scored(t *testing.T) {
	fs := &fakeStore{sessions: sampleSessions()}
	ts := newTestServer(t, fs)

	var scored []model.ScoredRecord
	resp := getJSON(t, ts.URL+"/api/scored?category=Pizza", &scored)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pizza", fs.lastFilter.Category)
	require.Len(t, scored, 2)
}

func TestServer_StoreError(t *testing.T) {
	ts := newTestServer(t, &fakeStore{err: errors.New("boom")})

	var body map[string]string
	resp := getJSON(t, ts.URL+"/api/cities", &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body["error"])
}

func TestServer_RateLimit(t *testing.T) {
	srv := New(&fakeStore{}, geo.DefaultHierarchy(), config.ServerConfig{RateLimit: 1, RateBurst: 1})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
