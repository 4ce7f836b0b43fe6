package voiceService

import (
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProximityGuard/internal/api/voice"
	proximityService "ProximityGuard/internal/api/proximity/service"
	"ProximityGuard/pkg/announcer"
	"ProximityGuard/pkg/audio"
)

type IVoiceService interface {
	ProcessVoiceCommand(ctx context.Context, file *multipart.FileHeader) (*voice.CommandResponse, error)
}

type voiceService struct {
	log              *logrus.Logger
	transcriber      audio.ITranscriber
	proximityService proximityService.IProximityService
	announcer        announcer.IAnnouncer
}

func NewVoiceService(
	log *logrus.Logger,
	transcriber audio.ITranscriber,
	ps proximityService.IProximityService,
	ann announcer.IAnnouncer,
) IVoiceService {
	return &voiceService{
		log:              log,
		transcriber:      transcriber,
		proximityService: ps,
		announcer:        ann,
	}
}
