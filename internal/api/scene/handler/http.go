package sceneHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	sceneService "ProximityGuard/internal/api/scene/service"
	"ProximityGuard/internal/middleware"
	"ProximityGuard/pkg/utils"
)

type SceneHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	sceneService sceneService.ISceneService
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss sceneService.ISceneService,
	utils utils.IUtils,
) *SceneHandler {
	return &SceneHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		sceneService: ss,
		utils:        utils,
	}
}

func (h *SceneHandler) Start(srv fiber.Router) {
	group := srv.Group("/scene")
	group.Post("/describe", h.middleware.NewRateLimiter, h.DescribeScene)
}
