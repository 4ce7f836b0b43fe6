package voiceHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	voiceService "ProximityGuard/internal/api/voice/service"
	"ProximityGuard/internal/middleware"
	"ProximityGuard/pkg/utils"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
	utils utils.IUtils,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		voiceService: vs,
		utils:        utils,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	group := srv.Group("/voice")
	group.Post("/command", h.middleware.NewRateLimiter, h.ProcessCommand)
}
