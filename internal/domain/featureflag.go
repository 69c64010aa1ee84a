package domain

import "time"

// FeatureFlag is a named on/off switch stored in the database.
// Flags are read fresh per request, there is no in-process cache:
// flipping a flag takes effect immediately for all operations.
type FeatureFlag struct {
	Name      string
	Enabled   bool
	UpdatedBy *string
	UpdatedAt time.Time
}
