package proximityService

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"ProximityGuard/internal/api/proximity"
	proximityRepository "ProximityGuard/internal/api/proximity/repository"
	"ProximityGuard/internal/entity"
	"ProximityGuard/pkg/announcer"
	"ProximityGuard/pkg/camera"
	"ProximityGuard/pkg/detector"
	redisPkg "ProximityGuard/pkg/redis"
	"ProximityGuard/pkg/s3"
	"ProximityGuard/pkg/utils"
)

type IProximityService interface {
	StartDetection(ctx context.Context) error
	StopDetection(ctx context.Context) error
	Running() bool
	Status() proximity.StatusResponse
	TrackedObjects() []entity.TrackedObject
	LatestFrameJPEG() ([]byte, error)
	TestVoiceAlert(text string) error
	GetAlertHistory(ctx context.Context, label string, limit int) ([]entity.AlertRecord, error)
	GetRecentAlerts(ctx context.Context, count int64) ([]entity.Alert, error)
}

type proximityService struct {
	log       *logrus.Logger
	cfg       Config
	tracker   *Tracker
	camera    camera.ICamera
	detector  detector.IDetector
	announcer announcer.IAnnouncer
	alertRepo proximityRepository.Repository
	redis     redisPkg.IRedis
	s3Client  s3.ItfS3
	utils     utils.IUtils

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	frameMu     sync.RWMutex
	latestFrame []byte

	framesHandled atomic.Int64
	alertsFired   atomic.Int64
}

func NewProximityService(
	log *logrus.Logger,
	cfg Config,
	cam camera.ICamera,
	det detector.IDetector,
	ann announcer.IAnnouncer,
	alertRepo proximityRepository.Repository,
	redis redisPkg.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IProximityService {
	return &proximityService{
		log:       log,
		cfg:       cfg,
		tracker:   NewTracker(cfg),
		camera:    cam,
		detector:  det,
		announcer: ann,
		alertRepo: alertRepo,
		redis:     redis,
		s3Client:  s3Client,
		utils:     utils,
	}
}
