package proximityRepository

const (
	queryCreateAlert = `
		INSERT INTO proximity_alerts (
			id,
			label,
			distance_cm,
			spoken_text,
			snapshot_key,
			created_at
		) VALUES (
			:id,
			:label,
			:distance_cm,
			:spoken_text,
			:snapshot_key,
			:created_at
		)
	`

	queryGetAlerts = `
		SELECT
			id,
			label,
			distance_cm,
			spoken_text,
			snapshot_key,
			created_at
		FROM proximity_alerts
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryGetAlertsByLabel = `
		SELECT
			id,
			label,
			distance_cm,
			spoken_text,
			snapshot_key,
			created_at
		FROM proximity_alerts
		WHERE label = :label
		ORDER BY created_at DESC
		LIMIT :limit
	`
)
