package places

import (
	"strconv"
	"strings"

	"github.com/ternarybob/dinescout/internal/models"
)

// ParseLocationHint interprets a "lat,lng" hint as a circular geo-bias of the given radius.
// Anything else (zip codes, city names, malformed pairs) returns nil and is treated as free text.
func ParseLocationHint(hint string, radiusMeters int) *models.LocationBias {
	parts := strings.Split(strings.TrimSpace(hint), ",")
	if len(parts) != 2 {
		return nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}

	return &models.LocationBias{
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: radiusMeters,
	}
}

// BuildQuery assembles the provider query text.
// The location hint is only appended as a text term when it did not parse as a geo-bias.
func BuildQuery(query, suffix, locationHint string, bias *models.LocationBias) string {
	terms := []string{strings.TrimSpace(query)}
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		terms = append(terms, suffix)
	}
	if bias == nil {
		if hint := strings.TrimSpace(locationHint); hint != "" {
			terms = append(terms, hint)
		}
	}
	return strings.Join(terms, " ")
}
