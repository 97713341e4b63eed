package oracle

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedDefaults(t *testing.T) {
	km, min := Fixed{}.Resolve(context.Background(), "A", "B")
	assert.Equal(t, FallbackDistanceKm, km)
	assert.Equal(t, FallbackDurationMin, min)
}

func TestFixedExplicitValues(t *testing.T) {
	km, min := Fixed{DistanceKm: 12, DurationMin: 40}.Resolve(context.Background(), "A", "B")
	assert.Equal(t, 12.0, km)
	assert.Equal(t, 40.0, min)
}

func newTestMapbox(serverURL string) *Mapbox {
	m := NewMapbox("token", "Bengaluru, India", slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.BaseURL = serverURL
	return m
}

func TestMapboxResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocoding"):
			w.Write([]byte(`{"features":[{"center":[77.75,12.98]}]}`))
		default:
			w.Write([]byte(`{"routes":[{"distance":18000,"duration":2700}]}`))
		}
	}))
	defer server.Close()

	km, min := newTestMapbox(server.URL).Resolve(context.Background(), "Whitefield", "Majestic")
	assert.Equal(t, 18.0, km)
	assert.Equal(t, 45.0, min)
}

func TestMapboxFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	km, min := newTestMapbox(server.URL).Resolve(context.Background(), "Whitefield", "Majestic")
	assert.Equal(t, FallbackDistanceKm, km)
	assert.Equal(t, FallbackDurationMin, min)
}

func TestMapboxFallsBackOnEmptyGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	km, min := newTestMapbox(server.URL).Resolve(context.Background(), "Nowhere", "Majestic")
	assert.Equal(t, FallbackDistanceKm, km)
	assert.Equal(t, FallbackDurationMin, min)
}

func TestMapboxFallsBackOnUnreachableHost(t *testing.T) {
	m := newTestMapbox("http://127.0.0.1:1")

	km, min := m.Resolve(context.Background(), "Whitefield", "Majestic")
	assert.Equal(t, FallbackDistanceKm, km)
	assert.Equal(t, FallbackDurationMin, min)
}
