package proximityService

import (
	"math"
	"sort"
	"sync"
	"time"

	"ProximityGuard/internal/entity"
)

// Tracker keeps the registry of recently seen objects and decides which of
// them warrant a spoken warning, throttled per label and globally.
//
// The detection loop is the single writer. One tick must run the registry
// update and the alert evaluation as one atomic step, because the global
// alert cursor and the per-object alert stamps are read-then-written across
// both phases. Process does exactly that under the tracker's lock; Update and
// EvaluateAlerts are also exported for callers that drive the phases
// themselves, each takes the lock on its own.
type Tracker struct {
	mu            sync.Mutex
	objects       map[string]*entity.TrackedObject
	lastAlertTime time.Time

	safeDistanceCM float64
	repeatInterval time.Duration
	minAlertGap    time.Duration
	persistence    time.Duration
}

func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		objects:        make(map[string]*entity.TrackedObject),
		safeDistanceCM: cfg.SafeDistanceCM,
		repeatInterval: cfg.ContinuousAlertInterval,
		minAlertGap:    cfg.MinAlertGap,
		persistence:    cfg.AlertPersistence,
	}
}

// Update folds one tick's detections into the registry. Labels seen this tick
// get a fresh distance and timestamp, labels unseen for longer than the
// persistence window are dropped, and labels inside the window keep their
// last known distance untouched. An empty map is valid and simply ages out
// every entry.
func (t *Tracker) Update(detections map[string]float64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.update(detections, now)
}

// EvaluateAlerts returns the warnings to fire at now and stamps the per-label
// and global alert times for each one.
func (t *Tracker) EvaluateAlerts(now time.Time) []entity.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evaluateAlerts(now)
}

// Process runs Update and EvaluateAlerts as one atomic tick step.
func (t *Tracker) Process(detections map[string]float64, now time.Time) []entity.Alert {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.update(detections, now)
	return t.evaluateAlerts(now)
}

func (t *Tracker) update(detections map[string]float64, now time.Time) {
	for label, obj := range t.objects {
		if distance, ok := detections[label]; ok {
			obj.Distance = clampDistance(distance)
			obj.LastSeen = now
		} else if now.Sub(obj.LastSeen) > t.persistence {
			delete(t.objects, label)
		}
	}

	for label, distance := range detections {
		if _, ok := t.objects[label]; !ok {
			t.objects[label] = &entity.TrackedObject{
				Label:    label,
				Distance: clampDistance(distance),
				LastSeen: now,
			}
		}
	}
}

func (t *Tracker) evaluateAlerts(now time.Time) []entity.Alert {
	// Map iteration order is random; alerts must come out in a stable order
	// because the first firing consumes the global gap for the rest of the
	// tick.
	labels := make([]string, 0, len(t.objects))
	for label := range t.objects {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var fired []entity.Alert

	for _, label := range labels {
		obj := t.objects[label]

		if obj.Distance >= t.safeDistanceCM {
			continue
		}
		if !obj.LastAlert.IsZero() && now.Sub(obj.LastAlert) < t.repeatInterval {
			continue
		}
		if !t.lastAlertTime.IsZero() && now.Sub(t.lastAlertTime) < t.minAlertGap {
			continue
		}

		obj.LastAlert = now
		t.lastAlertTime = now
		fired = append(fired, entity.Alert{Label: label, Distance: obj.Distance})
	}

	return fired
}

// Size returns the number of labels currently held in the registry.
func (t *Tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}

// Snapshot returns a copy of the registry, sorted by label.
func (t *Tracker) Snapshot() []entity.TrackedObject {
	t.mu.Lock()
	defer t.mu.Unlock()

	objects := make([]entity.TrackedObject, 0, len(t.objects))
	for _, obj := range t.objects {
		objects = append(objects, *obj)
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Label < objects[j].Label
	})

	return objects
}

// Reset clears the registry and the global alert cursor, used when detection
// stops.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.objects = make(map[string]*entity.TrackedObject)
	t.lastAlertTime = time.Time{}
}

// clampDistance maps malformed distances (negative, NaN) to 0, which the
// tracker treats as unsafely close rather than as missing data.
func clampDistance(distance float64) float64 {
	if math.IsNaN(distance) || distance < 0 {
		return 0
	}
	return distance
}
