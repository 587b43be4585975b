// Package services contains the server-side business logic: catalogue and
// borrower management, the borrowing lifecycle, reporting, and API accounts.
package services

import (
	"fmt"
	"time"
)

// instantLayouts are the accepted timestamp formats at the service boundary.
// RFC 3339 with or without fractional seconds, or a bare date taken as
// midnight UTC.
var instantLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// parseInstant parses an ISO-8601 instant string.
func parseInstant(value string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}
