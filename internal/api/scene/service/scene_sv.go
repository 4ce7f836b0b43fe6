package sceneService

import (
	"encoding/base64"
	"strings"

	"golang.org/x/net/context"

	"ProximityGuard/internal/api/scene"
	contextPkg "ProximityGuard/pkg/context"
	"github.com/sirupsen/logrus"
)

const describePrompt = `
You are the eyes of a visually impaired user. Describe what is directly ahead
in this camera frame in at most two short sentences. Lead with anything a
walking person could collide with, then mention the general surroundings.
Do not mention that this is an image or a camera.
`

// DescribeScene sends a frame to Gemini and speaks the description back to
// the user. When no image is uploaded the current live frame is used.
func (s *sceneService) DescribeScene(ctx context.Context, base64Image string) (string, bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if base64Image == "" {
		frame, err := s.proximityService.LatestFrameJPEG()
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Scene description requested without image while no frame is live")
			return "", false, scene.ErrNoImageAvailable
		}
		base64Image = base64.StdEncoding.EncodeToString(frame)
	}

	description, err := s.gemini.AnalyzeImage(ctx, base64Image, describePrompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Gemini scene description failed")
		return "", false, scene.ErrDescriptionFailed
	}

	description = strings.TrimSpace(description)
	announced := s.announcer.Announce("", 0, description)

	return description, announced, nil
}
