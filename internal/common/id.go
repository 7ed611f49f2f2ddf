package common

import (
	"github.com/google/uuid"
)

// NewSearchID generates a unique search request ID with the "srch_" prefix
// Format: srch_<uuid>
func NewSearchID() string {
	return "srch_" + uuid.New().String()
}

// NewScanID generates a unique website scan ID with the "scan_" prefix
func NewScanID() string {
	return "scan_" + uuid.New().String()
}
