package maps

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight-estimate-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocoder_ParsesStringCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Pune, Maharashtra", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "freight-test/1.0", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`[{"display_name":"Pune","lat":"18.5204","lon":"73.8567"}]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, "freight-test/1.0", srv.Client(), nil)
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Pune, Maharashtra")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 18.5204, got[0].Lat, 1e-9)
	assert.InDelta(t, 73.8567, got[0].Lon, 1e-9)
}

func TestNominatimGeocoder_RequiresUserAgent(t *testing.T) {
	_, err := NewNominatimGeocoder("http://localhost", " ", nil, nil)
	require.Error(t, err)
}

func TestNominatimGeocoder_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, "ua", srv.Client(), nil)
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNominatimGeocoder_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, "ua", srv.Client(), nil)
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Pune")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.True(t, se.Retryable())
}

func TestORSGeocoder_ReadsLonLatOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "IND", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[77.5946,12.9716]}}]}`))
	}))
	defer srv.Close()

	g, err := NewORSGeocoder("secret", srv.URL, "IND", srv.Client(), nil)
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Bangalore")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Coordinate{Lat: 12.9716, Lon: 77.5946}, got[0])
}

func TestORSGeocoder_RequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("", "http://localhost", "", nil, nil)
	require.Error(t, err)
}

func TestOSRMRouter_SumsLegs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/73.856700,18.520400;72.877700,19.076000", r.URL.Path)
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
		assert.Equal(t, "full", r.URL.Query().Get("overview"))

		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":1,"duration":1,"geometry":"_p~iF~ps|U",
			"legs":[{"distance":100000,"duration":3600},{"distance":48500,"duration":1800}]}]}`))
	}))
	defer srv.Close()

	r := NewOSRMRouter(srv.URL, srv.Client(), nil)
	got, err := r.Route(context.Background(),
		domain.Coordinate{Lat: 18.5204, Lon: 73.8567},
		domain.Coordinate{Lat: 19.0760, Lon: 72.8777},
	)
	require.NoError(t, err)
	assert.Equal(t, 148500.0, got.DistanceMeters)
	assert.Equal(t, 5400.0, got.DurationSeconds)
	assert.Equal(t, "_p~iF~ps|U", got.Geometry)
}

func TestOSRMRouter_NonOkCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points","routes":[]}`))
	}))
	defer srv.Close()

	r := NewOSRMRouter(srv.URL, srv.Client(), nil)
	_, err := r.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lon: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoRoute")
}

func TestORSRouter_SegmentsAndPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/driving-hgv/geojson", r.URL.Path)

		var body directionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, [][]float64{{73.8567, 18.5204}, {72.8777, 19.076}}, body.Coordinates)

		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[[73.8567,18.5204,560],[72.8777,19.076]]},
			"properties":{"segments":[{"distance":150000,"duration":10800}],"summary":{"distance":1,"duration":1}}}]}`))
	}))
	defer srv.Close()

	r, err := NewORSRouter("secret", srv.URL, srv.Client(), nil)
	require.NoError(t, err)

	got, err := r.Route(context.Background(),
		domain.Coordinate{Lat: 18.5204, Lon: 73.8567},
		domain.Coordinate{Lat: 19.076, Lon: 72.8777},
	)
	require.NoError(t, err)
	assert.Equal(t, 150000.0, got.DistanceMeters)
	assert.Equal(t, 10800.0, got.DurationSeconds)
	assert.Empty(t, got.Geometry)
	assert.Equal(t, []domain.Coordinate{{Lat: 18.5204, Lon: 73.8567}, {Lat: 19.076, Lon: 72.8777}}, got.Path)
}

func TestORSRouter_NoFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	r, err := NewORSRouter("secret", srv.URL, srv.Client(), nil)
	require.NoError(t, err)

	_, err = r.Route(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lon: 1})
	require.Error(t, err)
}

func TestGoogleProvider_GeocodeAndDirections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/maps/api/geocode/json":
			assert.Equal(t, "Chennai", r.URL.Query().Get("address"))
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":13.0827,"lng":80.2707}}}]}`))
		case "/maps/api/directions/json":
			assert.Equal(t, "13.082700,80.270700", r.URL.Query().Get("origin"))
			_, _ = w.Write([]byte(`{"status":"OK","routes":[{"overview_polyline":{"points":"_p~iF~ps|U"},
				"legs":[{"distance":{"text":"346 km","value":346000},"duration":{"text":"6 hours","value":21600}}]}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g, err := NewGoogleProvider("test-key", srv.URL, "in", srv.Client(), nil)
	require.NoError(t, err)

	coords, err := g.Geocode(context.Background(), "Chennai")
	require.NoError(t, err)
	require.Len(t, coords, 1)
	assert.Equal(t, domain.Coordinate{Lat: 13.0827, Lon: 80.2707}, coords[0])

	route, err := g.Route(context.Background(), coords[0], domain.Coordinate{Lat: 12.9716, Lon: 77.5946})
	require.NoError(t, err)
	assert.Equal(t, 346000.0, route.DistanceMeters)
	assert.Equal(t, 21600.0, route.DurationSeconds)
	assert.Equal(t, "_p~iF~ps|U", route.Geometry)
}

func TestGoogleProvider_RequiresKey(t *testing.T) {
	_, err := NewGoogleProvider("", "", "", nil, nil)
	require.Error(t, err)
}
