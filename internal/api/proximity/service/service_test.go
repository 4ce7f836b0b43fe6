package proximityService

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	proximityRepository "ProximityGuard/internal/api/proximity/repository"
	"ProximityGuard/internal/entity"
)

type stubCamera struct{ opened bool }

func (c *stubCamera) Open() error            { c.opened = true; return nil }
func (c *stubCamera) Read(dst *gocv.Mat) bool { return false }
func (c *stubCamera) Reopen() error          { return nil }
func (c *stubCamera) IsOpened() bool         { return c.opened }
func (c *stubCamera) Close() error           { c.opened = false; return nil }

type stubDetector struct{ connected bool }

func (d *stubDetector) DetectObjects(frame []byte) (*entity.DetectionFrameResult, error) {
	return &entity.DetectionFrameResult{}, nil
}
func (d *stubDetector) IsConnected() bool { return d.connected }
func (d *stubDetector) Reconnect() error  { return nil }
func (d *stubDetector) Close()            {}

type stubAlertStore struct{ records []entity.AlertRecord }

func (s *stubAlertStore) CreateAlert(c context.Context, alert entity.AlertRecord) error {
	s.records = append(s.records, alert)
	return nil
}

func (s *stubAlertStore) GetAlerts(c context.Context, limit int) ([]entity.AlertRecord, error) {
	return s.records, nil
}

func (s *stubAlertStore) GetAlertsByLabel(c context.Context, label string, limit int) ([]entity.AlertRecord, error) {
	var out []entity.AlertRecord
	for _, r := range s.records {
		if r.Label == label {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubRepo struct{ store *stubAlertStore }

func (r *stubRepo) NewClient(tx bool) (proximityRepository.Client, error) {
	return proximityRepository.Client{
		Alert:    r.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubS3 struct{}

func (s *stubS3) UploadSnapshot(jpeg []byte) (string, error) {
	return "snapshots/2025-03-10/test.jpg", nil
}

func (s *stubS3) PresignUrl(key string) (string, error) {
	return "https://bucket.example.com/" + key + "?signed", nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStatusReportsDeviceHealth(t *testing.T) {
	cam := &stubCamera{opened: true}
	det := &stubDetector{connected: true}

	svc := NewProximityService(quietLogger(), testConfig(), cam, det, nil, nil, nil, nil, nil)

	status := svc.Status()
	assert.False(t, status.Running)
	assert.True(t, status.CameraOpen)
	assert.True(t, status.DetectorConnected)

	cam.opened = false
	det.connected = false

	status = svc.Status()
	assert.False(t, status.CameraOpen)
	assert.False(t, status.DetectorConnected)
}

func TestGetAlertHistoryPresignsSnapshots(t *testing.T) {
	store := &stubAlertStore{records: []entity.AlertRecord{
		{ID: "01A", Label: "person", DistanceCM: 50, SnapshotKey: "snapshots/2025-03-10/a.jpg"},
		{ID: "01B", Label: "chair", DistanceCM: 80},
	}}

	svc := NewProximityService(quietLogger(), testConfig(),
		&stubCamera{}, &stubDetector{}, nil, &stubRepo{store: store}, nil, &stubS3{}, nil)

	records, err := svc.GetAlertHistory(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://bucket.example.com/snapshots/2025-03-10/a.jpg?signed", records[0].SnapshotURL)
	assert.Empty(t, records[1].SnapshotURL, "record without a snapshot stays linkless")
}

func TestGetAlertHistoryFiltersByLabel(t *testing.T) {
	store := &stubAlertStore{records: []entity.AlertRecord{
		{ID: "01A", Label: "person", DistanceCM: 50},
		{ID: "01B", Label: "chair", DistanceCM: 80},
	}}

	svc := NewProximityService(quietLogger(), testConfig(),
		&stubCamera{}, &stubDetector{}, nil, &stubRepo{store: store}, nil, &stubS3{}, nil)

	records, err := svc.GetAlertHistory(context.Background(), "chair", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "chair", records[0].Label)
}
