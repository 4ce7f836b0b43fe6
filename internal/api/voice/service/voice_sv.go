package voiceService

import (
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProximityGuard/internal/api/voice"
	contextPkg "ProximityGuard/pkg/context"
)

// ProcessVoiceCommand transcribes an uploaded utterance, maps it onto a
// control intent and executes it against the detection loop. The reply text
// is also spoken back through the announcer.
func (s *voiceService) ProcessVoiceCommand(ctx context.Context, file *multipart.FileHeader) (*voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	src, err := file.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open uploaded audio")
		return nil, voice.ErrInvalidAudioFile
	}
	defer src.Close()

	transcript, err := s.transcriber.TranscribeAudio(ctx, file.Filename, src)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to transcribe audio")
		return nil, voice.ErrTranscriptionFailed
	}

	intent := matchIntent(transcript)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"transcript": transcript,
		"intent":     intent,
	}).Info("Voice command transcribed")

	message, err := s.executeIntent(ctx, intent)
	if err != nil {
		return nil, err
	}

	s.announcer.Announce("", 0, message)

	return &voice.CommandResponse{
		Transcript: transcript,
		Intent:     intent,
		Message:    message,
	}, nil
}

func (s *voiceService) executeIntent(ctx context.Context, intent voice.CommandIntent) (string, error) {
	switch intent {
	case voice.IntentStart:
		if s.proximityService.Running() {
			return "Detection is already running", nil
		}
		if err := s.proximityService.StartDetection(ctx); err != nil {
			return "", err
		}
		return "Detection started", nil

	case voice.IntentStop:
		if !s.proximityService.Running() {
			return "Detection is not running", nil
		}
		if err := s.proximityService.StopDetection(ctx); err != nil {
			return "", err
		}
		return "Detection stopped", nil

	case voice.IntentStatus:
		status := s.proximityService.Status()
		if status.Running {
			return fmt.Sprintf("Detection is running, tracking %d objects", status.TrackedObjects), nil
		}
		return "Detection is stopped", nil

	default:
		return "Sorry, I did not understand that command", nil
	}
}
