package proximityHandler

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"ProximityGuard/internal/api/proximity"
)

const streamFPS = 24

// VideoFeed serves the annotated camera feed as an MJPEG multipart stream,
// the format browsers render natively in an <img> tag.
func (h *ProximityHandler) VideoFeed(ctx *fiber.Ctx) error {
	h.log.Info("Video feed client connected")

	ctx.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")

	running := h.proximityService.Running

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(time.Second / streamFPS)
		defer ticker.Stop()
		defer h.log.Info("Video feed client disconnected")

		for range ticker.C {
			if !running() {
				return
			}

			frame, err := h.proximityService.LatestFrameJPEG()
			if err != nil {
				continue
			}

			if _, err := w.WriteString("--frame\r\nContent-Type: image/jpeg\r\n\r\n"); err != nil {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			if _, err := w.WriteString("\r\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}

// handleAlertWebSocket pushes alert events, including synthesized speech, to
// a browser client as they fire.
func (h *ProximityHandler) handleAlertWebSocket(c *websocket.Conn) {
	h.log.Info("Alert WebSocket client connected")
	defer h.log.Info("Alert WebSocket client disconnected")

	subscriberID, err := h.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		subscriberID = uuid.NewString()
	}

	events := h.announcer.Subscribe(subscriberID)
	defer h.announcer.Unsubscribe(subscriberID)

	// Reader goroutine only to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				return
			}

			event := proximity.AlertEvent{
				Label:       ev.Label,
				DistanceCM:  ev.DistanceCM,
				SpokenText:  ev.SpokenText,
				AudioBase64: ev.AudioBase64,
			}

			if err := c.WriteJSON(event); err != nil {
				h.log.Debugf("Error writing alert event: %v", err)
				return
			}
		}
	}
}
