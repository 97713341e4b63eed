package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const mapboxBaseURL = "https://api.mapbox.com"

// Mapbox resolves distances through the Mapbox geocoding and directions
// APIs. Any upstream failure degrades to the fallback estimates and a log
// line; callers never see an error.
type Mapbox struct {
	Token   string
	Region  string // appended to geocoding queries, e.g. "Bengaluru, India"
	Client  *http.Client
	Logger  *slog.Logger
	BaseURL string
}

func NewMapbox(token, region string, logger *slog.Logger) *Mapbox {
	return &Mapbox{
		Token:   token,
		Region:  region,
		Client:  &http.Client{Timeout: 5 * time.Second},
		Logger:  logger,
		BaseURL: mapboxBaseURL,
	}
}

func (m *Mapbox) Resolve(ctx context.Context, origin, destination string) (float64, float64) {
	oLng, oLat, err := m.geocode(ctx, origin)
	if err != nil {
		return m.fallback(origin, destination, err)
	}
	dLng, dLat, err := m.geocode(ctx, destination)
	if err != nil {
		return m.fallback(origin, destination, err)
	}

	km, min, err := m.directions(ctx, oLng, oLat, dLng, dLat)
	if err != nil {
		return m.fallback(origin, destination, err)
	}
	return km, min
}

func (m *Mapbox) fallback(origin, destination string, err error) (float64, float64) {
	if m.Logger != nil {
		m.Logger.Warn("distance lookup failed, using fallback estimates",
			slog.String("origin", origin),
			slog.String("destination", destination),
			slog.String("error", err.Error()))
	}
	return FallbackDistanceKm, FallbackDurationMin
}

func (m *Mapbox) geocode(ctx context.Context, place string) (lng, lat float64, err error) {
	query := place
	if m.Region != "" {
		query = place + ", " + m.Region
	}
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		m.BaseURL, url.PathEscape(query), url.QueryEscape(m.Token))

	var payload struct {
		Features []struct {
			Center []float64 `json:"center"`
		} `json:"features"`
	}
	if err := m.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, 0, err
	}
	if len(payload.Features) == 0 || len(payload.Features[0].Center) < 2 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", place)
	}
	return payload.Features[0].Center[0], payload.Features[0].Center[1], nil
}

func (m *Mapbox) directions(ctx context.Context, oLng, oLat, dLng, dLat float64) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%f,%f;%f,%f?access_token=%s&overview=false",
		m.BaseURL, oLng, oLat, dLng, dLat, url.QueryEscape(m.Token))

	var payload struct {
		Routes []struct {
			Distance float64 `json:"distance"` // metres
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := m.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, 0, err
	}
	if len(payload.Routes) == 0 {
		return 0, 0, fmt.Errorf("no route between points")
	}
	return payload.Routes[0].Distance / 1000, payload.Routes[0].Duration / 60, nil
}

func (m *Mapbox) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
