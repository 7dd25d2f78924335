// Package polyline implements the encoded polyline format (precision 5) used
// by OSRM, OpenRouteService and Google Maps to ship route geometry.
package polyline

import (
	"errors"
	"math"
	"strings"

	"freight-estimate-service/internal/domain"
)

const factor = 1e5

// ErrMalformed is returned when an encoded string ends in the middle of a value.
var ErrMalformed = errors.New("polyline: malformed input")

// Encode returns the encoded polyline for points. Each coordinate is rounded
// to five decimal places, so the encoding is lossy below 1e-5 degrees.
func Encode(points []domain.Coordinate) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(points) * 8)

	var prevLat, prevLon int64
	for _, p := range points {
		lat := scale(p.Lat)
		lon := scale(p.Lon)

		writeValue(&b, lat-prevLat)
		writeValue(&b, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return b.String()
}

// Decode parses an encoded polyline. The empty string decodes to no points.
func Decode(s string) ([]domain.Coordinate, error) {
	if s == "" {
		return []domain.Coordinate{}, nil
	}

	points := make([]domain.Coordinate, 0, len(s)/4+1)

	var lat, lon int64
	for i := 0; i < len(s); {
		dLat, next, err := readValue(s, i)
		if err != nil {
			return nil, err
		}
		if next >= len(s) {
			// latitude without a matching longitude
			return nil, ErrMalformed
		}

		dLon, next, err := readValue(s, next)
		if err != nil {
			return nil, err
		}
		i = next

		lat += dLat
		lon += dLon
		points = append(points, domain.Coordinate{
			Lat: float64(lat) / factor,
			Lon: float64(lon) / factor,
		})
	}

	return points, nil
}

func scale(v float64) int64 {
	return int64(math.Round(v * factor))
}

// writeValue appends one zigzag-encoded signed delta in 5-bit groups.
func writeValue(b *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}

	for u >= 0x20 {
		b.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	b.WriteByte(byte(u + 63))
}

// readValue decodes one signed value starting at s[i] and returns the index
// of the next unread byte.
func readValue(s string, i int) (int64, int, error) {
	var result uint64
	var shift uint

	for {
		if i >= len(s) {
			return 0, i, ErrMalformed
		}

		c := int(s[i]) - 63
		i++
		if c < 0 || c > 0x3f {
			return 0, i, ErrMalformed
		}
		if shift > 60 {
			return 0, i, ErrMalformed
		}

		result |= uint64(c&0x1f) << shift
		shift += 5

		if c < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return int64(^(result >> 1)), i, nil
	}
	return int64(result >> 1), i, nil
}
