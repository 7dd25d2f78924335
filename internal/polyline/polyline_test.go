package polyline

import (
	"math"
	"math/rand"
	"testing"

	"freight-estimate-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopolyline "github.com/twpayne/go-polyline"
)

func TestEncodeKnownVector(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Encode(points))
}

func TestDecodeKnownVector(t *testing.T) {
	points, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.InDelta(t, 38.5, points[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, points[0].Lon, 1e-9)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, points[2].Lon, 1e-9)
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]domain.Coordinate{}))

	points, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 200; n++ {
		points := make([]domain.Coordinate, rng.Intn(30))
		for i := range points {
			points[i] = domain.Coordinate{
				Lat: round5(rng.Float64()*180 - 90),
				Lon: round5(rng.Float64()*360 - 180),
			}
		}

		decoded, err := Decode(Encode(points))
		require.NoError(t, err)
		require.Len(t, decoded, len(points))

		for i := range points {
			assert.InDelta(t, points[i].Lat, decoded[i].Lat, 1e-5)
			assert.InDelta(t, points[i].Lon, decoded[i].Lon, 1e-5)
		}
	}
}

func TestEncodeMatchesReferenceEncoder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n < 50; n++ {
		points := make([]domain.Coordinate, 1+rng.Intn(20))
		coords := make([][]float64, len(points))
		for i := range points {
			lat := round5(8 + rng.Float64()*29)
			lon := round5(68 + rng.Float64()*29)
			points[i] = domain.Coordinate{Lat: lat, Lon: lon}
			coords[i] = []float64{lat, lon}
		}

		want := string(gopolyline.EncodeCoords(coords))
		assert.Equal(t, want, Encode(points))

		ref, _, err := gopolyline.DecodeCoords([]byte(want))
		require.NoError(t, err)
		got, err := Decode(want)
		require.NoError(t, err)
		require.Len(t, got, len(ref))
		for i := range ref {
			assert.InDelta(t, ref[i][0], got[i].Lat, 1e-9)
			assert.InDelta(t, ref[i][1], got[i].Lon, 1e-9)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		// continuation bit set on the final byte
		{name: "truncated group", input: "_p~iF~ps|U_"},
		{name: "latitude only", input: "_p~iF"},
		{name: "byte below offset", input: "_p~iF\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
