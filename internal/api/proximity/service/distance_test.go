package proximityService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProximityGuard/internal/entity"
)

func TestEstimateDistance(t *testing.T) {
	// knownWidth 7cm at focal length 1000: a 70px box sits at 100cm.
	assert.Equal(t, 100.0, EstimateDistance(7, 1000, 70))
	assert.Equal(t, 200.0, EstimateDistance(7, 1000, 35))
	assert.InDelta(t, 50.0, EstimateDistance(7, 1000, 140), 1e-9)
}

func TestEstimateDistanceDegenerateBox(t *testing.T) {
	assert.Equal(t, 0.0, EstimateDistance(7, 1000, 0))
	assert.Equal(t, 0.0, EstimateDistance(7, 1000, -5))
}

func TestCollapseDetectionsClosestWins(t *testing.T) {
	cfg := Config{KnownWidthCM: 7, FocalLength: 1000}

	detections := []entity.Detection{
		{Label: "person", Box: entity.BoundingBox{X1: 0, Y1: 0, X2: 35, Y2: 50}},
		{Label: "person", Box: entity.BoundingBox{X1: 100, Y1: 0, X2: 240, Y2: 50}},
		{Label: "chair", Box: entity.BoundingBox{X1: 0, Y1: 0, X2: 70, Y2: 70}},
	}

	current := collapseDetections(detections, cfg)

	require.Len(t, current, 2)
	assert.InDelta(t, 50.0, current["person"], 1e-9, "closer of the two boxes")
	assert.Equal(t, 100.0, current["chair"])
}

func TestCollapseDetectionsDegenerateBoxIsUnsafe(t *testing.T) {
	cfg := Config{KnownWidthCM: 7, FocalLength: 1000}

	detections := []entity.Detection{
		{Label: "pole", Box: entity.BoundingBox{X1: 10, Y1: 0, X2: 10, Y2: 50}},
	}

	current := collapseDetections(detections, cfg)
	assert.Equal(t, 0.0, current["pole"])
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg := ConfigFromEnv()

	assert.Equal(t, 1000.0, cfg.FocalLength)
	assert.Equal(t, 100.0, cfg.SafeDistanceCM)
	assert.Equal(t, 640, cfg.FrameWidth)
	assert.Equal(t, 2*time.Second, cfg.ContinuousAlertInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.MinAlertGap)
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("SAFE_DISTANCE_CM", "150")
	t.Setenv("MIN_ALERT_GAP", "0.25")
	t.Setenv("FRAME_SKIP", "not-a-number")

	cfg := ConfigFromEnv()

	assert.Equal(t, 150.0, cfg.SafeDistanceCM)
	assert.Equal(t, 250*time.Millisecond, cfg.MinAlertGap)
	assert.Equal(t, 2, cfg.FrameSkip, "malformed value falls back to the default")
}
