package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dinescout/internal/models"
)

func TestParseLocationHint(t *testing.T) {
	tests := []struct {
		name    string
		hint    string
		wantNil bool
		wantLat float64
		wantLng float64
	}{
		{name: "lat lng pair", hint: "40.7128,-74.0060", wantLat: 40.7128, wantLng: -74.0060},
		{name: "spaces around parts", hint: " 51.5 , -0.12 ", wantLat: 51.5, wantLng: -0.12},
		{name: "zip code", hint: "10001", wantNil: true},
		{name: "city and state", hint: "Austin, TX", wantNil: true},
		{name: "three parts", hint: "1,2,3", wantNil: true},
		{name: "latitude out of range", hint: "91,0", wantNil: true},
		{name: "longitude out of range", hint: "0,181", wantNil: true},
		{name: "empty", hint: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bias := ParseLocationHint(tt.hint, 50000)
			if tt.wantNil {
				assert.Nil(t, bias)
				return
			}
			require.NotNil(t, bias)
			assert.InDelta(t, tt.wantLat, bias.Lat, 1e-9)
			assert.InDelta(t, tt.wantLng, bias.Lng, 1e-9)
			assert.Equal(t, 50000, bias.RadiusMeters)
		})
	}
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "pizza restaurant 10001", BuildQuery("pizza", "restaurant", "10001", nil))
	assert.Equal(t, "pizza restaurant", BuildQuery("pizza", "restaurant", "", nil))
	assert.Equal(t, "pizza 10001", BuildQuery(" pizza ", "", "10001", nil))

	bias := &models.LocationBias{Lat: 1, Lng: 2, RadiusMeters: 100}
	assert.Equal(t, "pizza restaurant", BuildQuery("pizza", "restaurant", "1,2", bias))
}
