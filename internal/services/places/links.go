package places

import (
	"strings"
)

// MapsLink returns a Google Maps link for a place.
// The place id gives an exact match; name and address are a search fallback.
func MapsLink(placeID, name, address string) string {
	if placeID != "" {
		return "https://www.google.com/maps/place/?q=place_id:" + placeID
	}
	return "https://www.google.com/maps/search/" +
		strings.ReplaceAll(name, " ", "+") + "+" +
		strings.ReplaceAll(address, " ", "+")
}

// CleanWebsiteURL strips tracking query parameters and ensures a scheme.
// Returns nil for an empty URL.
func CleanWebsiteURL(raw string) *string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}

	if idx := strings.Index(cleaned, "?"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		cleaned = "https://" + cleaned
	}

	return &cleaned
}
