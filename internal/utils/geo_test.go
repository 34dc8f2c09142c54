package utils

import (
	"testing"

	"github.com/retailops/locator/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineIdenticalCoordinates(t *testing.T) {
	c := models.Coordinate{Latitude: 39.7392, Longitude: -104.9903}
	assert.Equal(t, 0.0, Haversine(c, c))
}

func TestHaversineSymmetric(t *testing.T) {
	denver := models.Coordinate{Latitude: 39.7392, Longitude: -104.9903}
	boulder := models.Coordinate{Latitude: 40.015, Longitude: -105.2705}

	assert.Equal(t, Haversine(denver, boulder), Haversine(boulder, denver))
}

func TestHaversineKnownDistance(t *testing.T) {
	// Denver to Colorado Springs is roughly 63 miles as the crow flies
	denver := models.Coordinate{Latitude: 39.7392, Longitude: -104.9903}
	springs := models.Coordinate{Latitude: 38.8339, Longitude: -104.8214}

	d := Haversine(denver, springs)
	assert.InDelta(t, 63.0, d, 3.0)
}

func TestPostalDistance(t *testing.T) {
	tests := []struct {
		name  string
		codeA string
		codeB string
		want  float64
	}{
		{name: "identical codes", codeA: "10001", codeB: "10001", want: 0},
		{name: "adjacent codes", codeA: "10001", codeB: "10002", want: 1},
		{name: "order independent", codeA: "80202", codeB: "10001", want: 70201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostalDistance(tt.codeA, tt.codeB)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostalDistanceNonNumeric(t *testing.T) {
	_, err := PostalDistance("SW1A", "10001")
	assert.Error(t, err)

	_, err = PostalDistance("10001", "SW1A")
	assert.Error(t, err)
}

func TestCellKey(t *testing.T) {
	denver := models.Coordinate{Latitude: 39.7392, Longitude: -104.9903}

	key := CellKey(denver, 7)
	assert.Len(t, key, 7)

	// Nearby points within the same cell share the key
	nearby := models.Coordinate{Latitude: 39.73921, Longitude: -104.99031}
	assert.Equal(t, key, CellKey(nearby, 7))
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Coordinate
		wantErr bool
	}{
		{
			name:  "valid pair",
			input: "39.7392,-104.9903",
			want:  models.Coordinate{Latitude: 39.7392, Longitude: -104.9903},
		},
		{
			name:  "pair with spaces",
			input: "39.7392, -104.9903",
			want:  models.Coordinate{Latitude: 39.7392, Longitude: -104.9903},
		},
		{name: "missing longitude", input: "39.7392", wantErr: true},
		{name: "too many parts", input: "1,2,3", wantErr: true},
		{name: "non-numeric latitude", input: "abc,-104.99", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
