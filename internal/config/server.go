package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ProximityGuard/database/postgres"
	proximityHandler "ProximityGuard/internal/api/proximity/handler"
	proximityRepository "ProximityGuard/internal/api/proximity/repository"
	proximityService "ProximityGuard/internal/api/proximity/service"
	sceneHandler "ProximityGuard/internal/api/scene/handler"
	sceneService "ProximityGuard/internal/api/scene/service"
	voiceHandler "ProximityGuard/internal/api/voice/handler"
	voiceService "ProximityGuard/internal/api/voice/service"
	"ProximityGuard/internal/middleware"
	"ProximityGuard/pkg/announcer"
	"ProximityGuard/pkg/audio"
	"ProximityGuard/pkg/camera"
	"ProximityGuard/pkg/detector"
	"ProximityGuard/pkg/gemini"
	redisPkg "ProximityGuard/pkg/redis"
	"ProximityGuard/pkg/s3"
	"ProximityGuard/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	proximitySvc proximityService.IProximityService
	camera       camera.ICamera
	detector     detector.IDetector
	announcer    announcer.IAnnouncer
	transcriber  audio.ITranscriber
	redisServer  redisPkg.IRedis
	s3Client     s3.ItfS3
	geminiClient gemini.IGemini
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithCamera(cfg proximityService.Config) ServerOption {
	return func(s *Server) error {
		s.camera = camera.New(s.log, cfg.FrameWidth, cfg.FrameHeight, cfg.FPSTarget)
		return nil
	}
}

func WithDetectorClient() ServerOption {
	return func(s *Server) error {
		s.detector = detector.New(s.log)
		return nil
	}
}

func WithAnnouncer() ServerOption {
	return func(s *Server) error {
		s.announcer = announcer.New(s.log, audio.NewTTSService())
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		s.transcriber = audio.NewTranscriptionService()
		return nil
	}
}

func WithRedisServer(redisServer redisPkg.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	cfg := proximityService.ConfigFromEnv()

	// Proximity domain
	alertRepo := proximityRepository.New(s.db, s.log)
	proximityServices := proximityService.NewProximityService(
		s.log, cfg, s.camera, s.detector, s.announcer,
		alertRepo, s.redisServer, s.s3Client, s.utils,
	)
	proximityHandlers := proximityHandler.New(s.log, s.validator, s.middleware, proximityServices, s.announcer, s.utils)
	s.proximitySvc = proximityServices

	// Scene description
	sceneServices := sceneService.NewSceneService(s.log, s.geminiClient, proximityServices, s.announcer)
	sceneHandlers := sceneHandler.New(s.log, s.validator, s.middleware, sceneServices, s.utils)

	// Voice control
	voiceServices := voiceService.NewVoiceService(s.log, s.transcriber, proximityServices, s.announcer)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, proximityHandlers, sceneHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		return err
	}

	return nil
}

// Shutdown stops the detection loop first so no tick can dispatch into the
// announcer once it is closed, then tears down the announcer, the external
// clients and the HTTP listener.
func (s *Server) Shutdown() error {
	if s.proximitySvc != nil && s.proximitySvc.Running() {
		if err := s.proximitySvc.StopDetection(context.Background()); err != nil {
			s.log.Warnf("Error stopping detection during shutdown: %v", err)
		}
	}
	if s.announcer != nil {
		s.announcer.Close()
	}
	if s.detector != nil {
		s.detector.Close()
	}
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
