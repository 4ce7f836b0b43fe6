package voiceHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"ProximityGuard/internal/api/voice"
	contextPkg "ProximityGuard/pkg/context"
	"ProximityGuard/pkg/handlerUtil"
	"ProximityGuard/pkg/log"
)

func (h *VoiceHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 20*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing voice command request")

	file, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.Handle(ctx, requestID, voice.ErrInvalidAudioFile, ctx.Path(), "get_audio_file")
	}

	if err := h.utils.ValidateAudioFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, voice.ErrInvalidAudioFile, ctx.Path(), "validate_audio_file")
	}

	result, err := h.voiceService.ProcessVoiceCommand(c, file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_voice_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"intent":     result.Intent,
		}).Info("Voice command processed")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
