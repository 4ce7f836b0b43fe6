package proximityRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ProximityGuard/internal/entity"
	contextPkg "ProximityGuard/pkg/context"
)

type AlertRecordDB struct {
	ID          sql.NullString  `db:"id"`
	Label       sql.NullString  `db:"label"`
	DistanceCM  sql.NullFloat64 `db:"distance_cm"`
	SpokenText  sql.NullString  `db:"spoken_text"`
	SnapshotKey sql.NullString  `db:"snapshot_key"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *alertRepository) CreateAlert(c context.Context, alert entity.AlertRecord) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":           alert.ID,
		"label":        alert.Label,
		"distance_cm":  alert.DistanceCM,
		"spoken_text":  alert.SpokenText,
		"snapshot_key": alert.SnapshotKey,
		"created_at":   alert.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateAlert, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateAlert")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating alert record")
		return err
	}

	return nil
}

func (r *alertRepository) GetAlerts(c context.Context, limit int) ([]entity.AlertRecord, error) {
	return r.selectAlerts(c, queryGetAlerts, map[string]interface{}{
		"limit": limit,
	})
}

func (r *alertRepository) GetAlertsByLabel(c context.Context, label string, limit int) ([]entity.AlertRecord, error) {
	return r.selectAlerts(c, queryGetAlertsByLabel, map[string]interface{}{
		"label": label,
		"limit": limit,
	})
}

func (r *alertRepository) selectAlerts(c context.Context, baseQuery string, argsKV map[string]interface{}) ([]entity.AlertRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []AlertRecordDB

	query, args, err := sqlx.Named(baseQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectAlerts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("selectAlerts execution err")
		return nil, err
	}

	records := make([]entity.AlertRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, r.makeAlertRecord(row))
	}

	return records, nil
}

func (r *alertRepository) makeAlertRecord(row AlertRecordDB) entity.AlertRecord {
	return entity.AlertRecord{
		ID:          row.ID.String,
		Label:       row.Label.String,
		DistanceCM:  row.DistanceCM.Float64,
		SpokenText:  row.SpokenText.String,
		SnapshotKey: row.SnapshotKey.String,
		CreatedAt:   row.CreatedAt,
	}
}
