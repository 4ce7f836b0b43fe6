package proximityService

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProximityGuard/internal/entity"
)

func testConfig() Config {
	return Config{
		SafeDistanceCM:          100,
		ContinuousAlertInterval: 2 * time.Second,
		MinAlertGap:             500 * time.Millisecond,
		AlertPersistence:        1 * time.Second,
	}
}

var trackerEpoch = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// at offsets the fixed test epoch by a number of seconds.
func at(seconds float64) time.Time {
	return trackerEpoch.Add(time.Duration(seconds * float64(time.Second)))
}

func TestTrackerFirstSightingFires(t *testing.T) {
	tr := NewTracker(testConfig())

	alerts := tr.Process(map[string]float64{"person": 50}, at(0))

	require.Len(t, alerts, 1)
	assert.Equal(t, "person", alerts[0].Label)
	assert.Equal(t, 50.0, alerts[0].Distance)
}

func TestTrackerPerObjectThrottle(t *testing.T) {
	tr := NewTracker(testConfig())

	alerts := tr.Process(map[string]float64{"person": 50}, at(0))
	require.Len(t, alerts, 1)

	// Repeat inside the per-object interval stays silent.
	alerts = tr.Process(map[string]float64{"person": 50}, at(0.3))
	assert.Empty(t, alerts)

	// Exactly at the interval boundary it fires again.
	alerts = tr.Process(map[string]float64{"person": 55}, at(2.0))
	require.Len(t, alerts, 1)
	assert.Equal(t, 55.0, alerts[0].Distance)
}

func TestTrackerGlobalThrottleWithinOneTick(t *testing.T) {
	tr := NewTracker(testConfig())

	// Two unsafe labels in the same tick: the first in label order consumes
	// the global gap and gates the second.
	alerts := tr.Process(map[string]float64{"chair": 40, "person": 50}, at(0))

	require.Len(t, alerts, 1)
	assert.Equal(t, "chair", alerts[0].Label)

	// Once the global gap has passed the second one gets its turn.
	alerts = tr.Process(map[string]float64{"chair": 40, "person": 50}, at(0.6))
	require.Len(t, alerts, 1)
	assert.Equal(t, "person", alerts[0].Label)
}

func TestTrackerSafeBoundaryIsStrict(t *testing.T) {
	tr := NewTracker(testConfig())

	alerts := tr.Process(map[string]float64{"person": 100}, at(0))
	assert.Empty(t, alerts)

	alerts = tr.Process(map[string]float64{"person": 99.99}, at(1))
	require.Len(t, alerts, 1)
}

func TestTrackerEviction(t *testing.T) {
	tr := NewTracker(testConfig())

	tr.Update(map[string]float64{"person": 150}, at(0))
	require.Equal(t, 1, tr.Size())

	// Within the persistence window the entry and its last distance survive.
	tr.Update(map[string]float64{}, at(0.9))
	require.Equal(t, 1, tr.Size())
	objects := tr.Snapshot()
	require.Len(t, objects, 1)
	assert.Equal(t, 150.0, objects[0].Distance)
	assert.Equal(t, at(0), objects[0].LastSeen)

	// Beyond the window the entry is gone, not just stale.
	tr.Update(map[string]float64{}, at(1.5))
	assert.Equal(t, 0, tr.Size())
}

func TestTrackerReappearanceResetsPersistence(t *testing.T) {
	tr := NewTracker(testConfig())

	tr.Update(map[string]float64{"dog": 80}, at(0))
	tr.Update(map[string]float64{"dog": 90}, at(0.8))
	tr.Update(map[string]float64{}, at(1.5))

	// Last seen at 0.8, so at 1.5 the absence span is only 0.7.
	assert.Equal(t, 1, tr.Size())
}

func TestTrackerGracePeriodKeepsStaleDistance(t *testing.T) {
	cfg := testConfig()
	cfg.MinAlertGap = 0
	tr := NewTracker(cfg)

	// An unsafe sighting fires, then the object disappears but stays inside
	// the persistence window. Its stale distance remains eligible once the
	// per-object interval elapses.
	alerts := tr.Process(map[string]float64{"person": 50}, at(0))
	require.Len(t, alerts, 1)

	tr.Update(map[string]float64{}, at(0.9))
	require.Equal(t, 1, tr.Size())

	alerts = tr.EvaluateAlerts(at(2.0))
	require.Len(t, alerts, 1)
	assert.Equal(t, 50.0, alerts[0].Distance)
}

func TestTrackerEmptyUpdateIsValid(t *testing.T) {
	tr := NewTracker(testConfig())

	assert.NotPanics(t, func() {
		tr.Update(map[string]float64{}, at(0))
		tr.Update(nil, at(1))
	})
	assert.Equal(t, 0, tr.Size())
}

func TestTrackerClampsMalformedDistances(t *testing.T) {
	tr := NewTracker(testConfig())

	alerts := tr.Process(map[string]float64{
		"cart": -12,
		"wall": math.NaN(),
	}, at(0))

	// Both clamp to 0 and count as unsafe; the global gap lets only the
	// first label through this tick.
	require.Len(t, alerts, 1)
	assert.Equal(t, "cart", alerts[0].Label)
	assert.Equal(t, 0.0, alerts[0].Distance)
}

func TestTrackerScenario(t *testing.T) {
	// End to end walkthrough with the calibration defaults:
	// safe=100cm, repeat=2s, global gap=0.5s, persistence=1s.
	tr := NewTracker(testConfig())

	alerts := tr.Process(map[string]float64{"person": 50}, at(0))
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.Alert{Label: "person", Distance: 50}, alerts[0])

	alerts = tr.Process(map[string]float64{"person": 50}, at(0.3))
	assert.Empty(t, alerts, "per-object gap 0.3s < 2s")

	alerts = tr.Process(map[string]float64{"person": 55, "chair": 200}, at(2.1))
	require.Len(t, alerts, 1, "chair at 200cm is safe, person repeats")
	assert.Equal(t, entity.Alert{Label: "person", Distance: 55}, alerts[0])

	alerts = tr.Process(map[string]float64{}, at(3.5))
	assert.Empty(t, alerts)
	assert.Equal(t, 0, tr.Size(), "person unseen for 1.4s > 1s persistence")
}

func TestTrackerResetClearsStateAndCursor(t *testing.T) {
	tr := NewTracker(testConfig())

	tr.Process(map[string]float64{"person": 50}, at(0))
	require.Equal(t, 1, tr.Size())

	tr.Reset()
	assert.Equal(t, 0, tr.Size())

	// After a reset the global cursor must not gate the next sighting.
	alerts := tr.Process(map[string]float64{"person": 50}, at(0.1))
	require.Len(t, alerts, 1)
}

func TestTrackerSnapshotSorted(t *testing.T) {
	tr := NewTracker(testConfig())

	tr.Update(map[string]float64{"person": 50, "bike": 70, "chair": 300}, at(0))

	objects := tr.Snapshot()
	require.Len(t, objects, 3)
	assert.Equal(t, "bike", objects[0].Label)
	assert.Equal(t, "chair", objects[1].Label)
	assert.Equal(t, "person", objects[2].Label)
}
