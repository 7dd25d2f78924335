package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"
)

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimGeocoder resolves free text with the OpenStreetMap Nominatim
// search API. The public instance requires an identifying User-Agent and at
// most one request per second; throttling is the caller's job.
type NominatimGeocoder struct {
	client  *httpClient
	baseURL string
	limit   int
}

func NewNominatimGeocoder(baseURL, userAgent string, session *http.Client, metrics *obs.Metrics) (*NominatimGeocoder, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim: user agent is required")
	}

	return &NominatimGeocoder{
		client:  newHTTPClient("nominatim", session, map[string]string{"User-Agent": userAgent}, metrics),
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   1,
	}, nil
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, query string) ([]domain.Coordinate, error) {
	req, err := n.client.newRequest(ctx, http.MethodGet, n.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(n.limit))
	req.URL.RawQuery = q.Encode()

	var decoded []nominatimResult
	if err := n.client.doJSON(req, &decoded); err != nil {
		return nil, fmt.Errorf("nominatim geocode %q: %w", query, err)
	}

	out := make([]domain.Coordinate, 0, len(decoded))
	for _, r := range decoded {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim geocode %q: invalid lat %q: %w", query, r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("nominatim geocode %q: invalid lon %q: %w", query, r.Lon, err)
		}
		out = append(out, domain.Coordinate{Lat: lat, Lon: lon})
	}

	return out, nil
}
