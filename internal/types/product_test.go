package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionValidate(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		field string
	}{
		{"Torino", Position{Latitude: 45.0703, Longitude: 7.6869}, ""},
		{"Bounds inclusive", Position{Latitude: -90, Longitude: 180}, ""},
		{"Latitude too high", Position{Latitude: 90.1}, "position.latitude"},
		{"Longitude too low", Position{Longitude: -180.1}, "position.longitude"},
		{"NaN latitude", Position{Latitude: math.NaN(), Longitude: 7}, "position.latitude"},
		{"NaN longitude", Position{Latitude: 45, Longitude: math.NaN()}, "position.longitude"},
		{"Infinite latitude", Position{Latitude: math.Inf(-1)}, "position.latitude"},
		{"Infinite longitude", Position{Longitude: math.Inf(1)}, "position.longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pos.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var invalid ErrInvalidRequest
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}
