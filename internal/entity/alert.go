package entity

import "time"

// Alert is a proximity warning fired by the tracker for one tick.
type Alert struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance_cm"`
}

// AlertRecord is a persisted alert, as stored in the alert history table.
// SnapshotKey is the stored S3 object key; SnapshotURL is a short-lived
// presigned link filled in when the record is served, never persisted.
type AlertRecord struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	DistanceCM  float64   `json:"distance_cm"`
	SpokenText  string    `json:"spoken_text"`
	SnapshotKey string    `json:"-"`
	SnapshotURL string    `json:"snapshot_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
