package proximityService

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"ProximityGuard/internal/api/proximity"
	"ProximityGuard/internal/entity"
	contextPkg "ProximityGuard/pkg/context"
)

func (s *proximityService) StartDetection(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := s.camera.Open(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open camera")
		return proximity.ErrCameraUnavailable
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.runLoop(loopCtx)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Detection started")

	return nil
}

func (s *proximityService) StopDetection(ctx context.Context) error {
	requestID := contextPkg.GetRequestID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return proximity.ErrNotRunning
	}

	s.cancel()
	<-s.done

	if err := s.camera.Close(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Error releasing camera")
	}

	s.tracker.Reset()
	s.running = false

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Detection stopped")

	return nil
}

func (s *proximityService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *proximityService) Status() proximity.StatusResponse {
	return proximity.StatusResponse{
		Running:           s.Running(),
		CameraOpen:        s.camera.IsOpened(),
		DetectorConnected: s.detector.IsConnected(),
		TrackedObjects:    s.tracker.Size(),
		FramesHandled:     s.framesHandled.Load(),
		AlertsFired:       s.alertsFired.Load(),
	}
}

func (s *proximityService) TrackedObjects() []entity.TrackedObject {
	return s.tracker.Snapshot()
}

func (s *proximityService) LatestFrameJPEG() ([]byte, error) {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()

	if s.latestFrame == nil {
		return nil, proximity.ErrNoFrameAvailable
	}

	frame := make([]byte, len(s.latestFrame))
	copy(frame, s.latestFrame)
	return frame, nil
}

func (s *proximityService) TestVoiceAlert(text string) error {
	if text == "" {
		text = "This is a test voice alert"
	}

	if !s.announcer.Announce("", 0, text) {
		return proximity.ErrInternalServerError
	}
	return nil
}

// runLoop is the single tick producer: read a frame, detect, annotate, run
// the tracker's atomic update+evaluate step, dispatch alerts. Nothing in
// here blocks on the announcer or on persistence.
func (s *proximityService) runLoop(ctx context.Context) {
	defer close(s.done)

	interval := time.Second / time.Duration(s.cfg.FPSTarget)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	img := gocv.NewMat()
	defer img.Close()

	frameCount := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frameCount++
			s.tick(&img, frameCount)
		}
	}
}

func (s *proximityService) tick(img *gocv.Mat, frameCount int) {
	if !s.camera.Read(img) || img.Empty() {
		s.log.Warn("Frame read failed, reinitializing camera")
		if err := s.camera.Reopen(); err != nil {
			s.log.Errorf("Camera reopen failed: %v", err)
		}
		return
	}

	s.framesHandled.Add(1)

	gocv.Resize(*img, img, resolution(s.cfg), 0, 0, gocv.InterpolationLinear)

	// Skipped frames still reach the stream, just without detection.
	if frameCount%s.cfg.FrameSkip != 0 {
		s.publishFrame(img)
		return
	}

	jpeg, err := encodeJPEG(img, s.cfg.JPEGQuality)
	if err != nil {
		s.log.Errorf("Frame encode failed: %v", err)
		return
	}

	result, err := s.detector.DetectObjects(jpeg)
	if err != nil {
		// Model failure: fall back to the unannotated frame, skip the tick.
		s.log.Warnf("Detection failed: %v", err)
		s.storeFrame(jpeg)
		return
	}

	detections := collapseDetections(result.Detections, s.cfg)
	annotateFrame(img, result.Detections, s.cfg)
	s.publishFrame(img)

	alerts := s.tracker.Process(detections, time.Now())
	for _, alert := range alerts {
		s.dispatchAlert(alert)
	}
}

func (s *proximityService) dispatchAlert(alert entity.Alert) {
	s.alertsFired.Add(1)

	text := fmt.Sprintf("Warning! %s at %d centimeters", alert.Label, int(alert.Distance))
	s.announcer.Announce(alert.Label, alert.Distance, text)

	snapshot, _ := s.LatestFrameJPEG()

	go s.persistAlert(alert, text, snapshot)
}

// persistAlert records the alert in Postgres, caches it in Redis and uploads
// the annotated snapshot. All of it is best effort; a failed write must not
// surface into the tick path.
func (s *proximityService) persistAlert(alert entity.Alert, text string, snapshot []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var snapshotKey string
	if s.s3Client != nil && snapshot != nil {
		key, err := s.s3Client.UploadSnapshot(snapshot)
		if err != nil {
			s.log.Warnf("Snapshot upload failed: %v", err)
		} else {
			snapshotKey = key
		}
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.Errorf("Failed to generate alert ID: %v", err)
		return
	}

	repo, err := s.alertRepo.NewClient(false)
	if err != nil {
		s.log.Errorf("Failed to create repository client: %v", err)
		return
	}

	record := entity.AlertRecord{
		ID:          id,
		Label:       alert.Label,
		DistanceCM:  alert.Distance,
		SpokenText:  text,
		SnapshotKey: snapshotKey,
		CreatedAt:   time.Now(),
	}

	if err := repo.Alert.CreateAlert(ctx, record); err != nil {
		s.log.Warnf("Failed to persist alert record: %v", err)
	}

	if s.redis != nil {
		if err := s.redis.PushRecentAlert(ctx, alert, 50); err != nil {
			s.log.Warnf("Failed to cache recent alert: %v", err)
		}
	}
}

func (s *proximityService) GetAlertHistory(ctx context.Context, label string, limit int) ([]entity.AlertRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	repo, err := s.alertRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	var records []entity.AlertRecord
	if label != "" {
		records, err = repo.Alert.GetAlertsByLabel(ctx, label, limit)
	} else {
		records, err = repo.Alert.GetAlerts(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	// Snapshot keys become presigned links on the way out; a presign failure
	// only costs that record its link.
	if s.s3Client != nil {
		for i := range records {
			if records[i].SnapshotKey == "" {
				continue
			}
			url, err := s.s3Client.PresignUrl(records[i].SnapshotKey)
			if err != nil {
				s.log.Warnf("Failed to presign snapshot %s: %v", records[i].SnapshotKey, err)
				continue
			}
			records[i].SnapshotURL = url
		}
	}

	return records, nil
}

func (s *proximityService) GetRecentAlerts(ctx context.Context, count int64) ([]entity.Alert, error) {
	if count <= 0 || count > 50 {
		count = 10
	}
	return s.redis.GetRecentAlerts(ctx, count)
}

func (s *proximityService) publishFrame(img *gocv.Mat) {
	jpeg, err := encodeJPEG(img, s.cfg.JPEGQuality)
	if err != nil {
		s.log.Errorf("Frame encode failed: %v", err)
		return
	}
	s.storeFrame(jpeg)
}

func (s *proximityService) storeFrame(jpeg []byte) {
	s.frameMu.Lock()
	s.latestFrame = jpeg
	s.frameMu.Unlock()
}
