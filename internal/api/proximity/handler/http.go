package proximityHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	proximityService "ProximityGuard/internal/api/proximity/service"
	"ProximityGuard/internal/middleware"
	"ProximityGuard/pkg/announcer"
	"ProximityGuard/pkg/utils"
)

type ProximityHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	proximityService proximityService.IProximityService
	announcer        announcer.IAnnouncer
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ps proximityService.IProximityService,
	ann announcer.IAnnouncer,
	utils utils.IUtils,
) *ProximityHandler {
	return &ProximityHandler{
		log:              log,
		validator:        validator,
		middleware:       middleware,
		proximityService: ps,
		announcer:        ann,
		utils:            utils,
	}
}

func (h *ProximityHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	group := srv.Group("/proximity")
	group.Post("/start", h.StartDetection)
	group.Post("/stop", h.StopDetection)
	group.Get("/status", h.DetectionStatus)
	group.Get("/objects", h.TrackedObjects)
	group.Get("/video_feed", h.VideoFeed)
	group.Post("/tts/test", h.TestTTS)
	group.Get("/alerts", h.AlertHistory)
	group.Get("/alerts/recent", h.RecentAlerts)

	group.Use("/alerts/ws", wsMiddleware)
	group.Get("/alerts/ws", websocket.New(h.handleAlertWebSocket))
}
