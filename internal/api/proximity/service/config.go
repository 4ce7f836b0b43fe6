package proximityService

import (
	"os"
	"strconv"
	"time"
)

// Config holds the tuning knobs for distance estimation, the camera loop and
// alert throttling. Values come from the environment with the same defaults
// the system was calibrated with.
type Config struct {
	FocalLength    float64
	KnownWidthCM   float64
	SafeDistanceCM float64

	FrameWidth  int
	FrameHeight int
	FPSTarget   int
	FrameSkip   int
	JPEGQuality int

	ContinuousAlertInterval time.Duration
	MinAlertGap             time.Duration
	AlertPersistence        time.Duration
}

func ConfigFromEnv() Config {
	cfg := Config{
		FocalLength:    envFloat("PROXIMITY_FOCAL_LENGTH", 1000),
		KnownWidthCM:   envFloat("PROXIMITY_KNOWN_WIDTH_CM", 7),
		SafeDistanceCM: envFloat("SAFE_DISTANCE_CM", 100),

		FrameWidth:  envInt("FRAME_WIDTH", 640),
		FrameHeight: envInt("FRAME_HEIGHT", 480),
		FPSTarget:   envInt("FPS_TARGET", 24),
		FrameSkip:   envInt("FRAME_SKIP", 2),
		JPEGQuality: envInt("JPEG_QUALITY", 70),

		ContinuousAlertInterval: envSeconds("CONTINUOUS_ALERT_INTERVAL", 2.0),
		MinAlertGap:             envSeconds("MIN_ALERT_GAP", 0.5),
		AlertPersistence:        envSeconds("ALERT_PERSISTENCE", 1.0),
	}

	// Both feed divisors in the capture loop.
	if cfg.FPSTarget < 1 {
		cfg.FPSTarget = 24
	}
	if cfg.FrameSkip < 1 {
		cfg.FrameSkip = 1
	}

	return cfg
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envSeconds(key string, fallback float64) time.Duration {
	return time.Duration(envFloat(key, fallback) * float64(time.Second))
}
