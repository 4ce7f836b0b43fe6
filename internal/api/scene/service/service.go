package sceneService

import (
	"golang.org/x/net/context"

	proximityService "ProximityGuard/internal/api/proximity/service"
	"ProximityGuard/pkg/announcer"
	"ProximityGuard/pkg/gemini"
	"github.com/sirupsen/logrus"
)

type ISceneService interface {
	DescribeScene(ctx context.Context, base64Image string) (string, bool, error)
}

type sceneService struct {
	log              *logrus.Logger
	gemini           gemini.IGemini
	proximityService proximityService.IProximityService
	announcer        announcer.IAnnouncer
}

func NewSceneService(
	log *logrus.Logger,
	geminiClient gemini.IGemini,
	ps proximityService.IProximityService,
	ann announcer.IAnnouncer,
) ISceneService {
	return &sceneService{
		log:              log,
		gemini:           geminiClient,
		proximityService: ps,
		announcer:        ann,
	}
}
