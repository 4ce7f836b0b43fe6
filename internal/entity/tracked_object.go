package entity

import "time"

// TrackedObject is one entry of the proximity registry, keyed by detection
// label. LastAlert stays zero until the first warning for this label fires.
type TrackedObject struct {
	Label     string    `json:"label"`
	Distance  float64   `json:"distance_cm"`
	LastSeen  time.Time `json:"last_seen"`
	LastAlert time.Time `json:"last_alert"`
}
