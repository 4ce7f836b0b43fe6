package proximityHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"ProximityGuard/internal/api/proximity"
	contextPkg "ProximityGuard/pkg/context"
	"ProximityGuard/pkg/handlerUtil"
	"ProximityGuard/pkg/log"
)

func (h *ProximityHandler) StartDetection(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Info("Start detection request received")

	if h.proximityService.Running() {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.ControlResponse{
			Status:  "already running",
			Message: "Detection is already running",
		})
	}

	if err := h.proximityService.StartDetection(contextPkg.FromFiberCtx(ctx)); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "start_detection")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.ControlResponse{
		Status:  "started",
		Message: "Detection started",
	})
}

func (h *ProximityHandler) StopDetection(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Info("Stop detection request received")

	if !h.proximityService.Running() {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.ControlResponse{
			Status:  "not running",
			Message: "Detection is not running",
		})
	}

	if err := h.proximityService.StopDetection(contextPkg.FromFiberCtx(ctx)); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "stop_detection")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.ControlResponse{
		Status:  "stopped",
		Message: "Detection stopped",
	})
}

func (h *ProximityHandler) DetectionStatus(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.proximityService.Status())
}

func (h *ProximityHandler) TrackedObjects(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"data": h.proximityService.TrackedObjects(),
	})
}

func (h *ProximityHandler) TestTTS(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req proximity.TTSTestRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}

	if err := h.proximityService.TestVoiceAlert(req.Text); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "test_tts")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.ControlResponse{
		Status:  "success",
		Message: "Voice alert test initiated",
	})
}

func (h *ProximityHandler) AlertHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit := ctx.QueryInt("limit", 50)
	label := ctx.Query("label")

	records, err := h.proximityService.GetAlertHistory(c, label, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_alert_history")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.AlertHistoryResponse{
		Data: records,
	})
}

func (h *ProximityHandler) RecentAlerts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	count := ctx.QueryInt("count", 10)

	alerts, err := h.proximityService.GetRecentAlerts(c, int64(count))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_recent_alerts")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, proximity.RecentAlertsResponse{
		Data: alerts,
	})
}
