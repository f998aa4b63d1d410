package domain

import "time"

// LoadReport summarizes one load cycle of a collection.
// Changed holds ids that are new or whose digest moved; Removed ids vanished since the previous load.
type LoadReport struct {
	Collection string        `json:"collection"`
	Loaded     int           `json:"loaded"`
	Skipped    int           `json:"skipped"`
	Changed    []string      `json:"changed"`
	Removed    []string      `json:"removed"`
	Available  bool          `json:"available"`
	Duration   time.Duration `json:"duration"`
}
