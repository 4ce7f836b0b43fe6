package proximity

import "ProximityGuard/internal/entity"

type StatusResponse struct {
	Running           bool  `json:"running"`
	CameraOpen        bool  `json:"camera_open"`
	DetectorConnected bool  `json:"detector_connected"`
	TrackedObjects    int   `json:"tracked_objects"`
	FramesHandled     int64 `json:"frames_handled"`
	AlertsFired       int64 `json:"alerts_fired"`
}

type ControlResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TTSTestRequest struct {
	Text string `json:"text" validate:"omitempty,max=200"`
}

type AlertHistoryResponse struct {
	Data []entity.AlertRecord `json:"data"`
}

type RecentAlertsResponse struct {
	Data []entity.Alert `json:"data"`
}

// AlertEvent is what gets pushed to browser websocket subscribers when a
// warning fires. AudioBase64 carries the synthesized speech when TTS is
// configured, empty otherwise.
type AlertEvent struct {
	Label       string  `json:"label"`
	DistanceCM  float64 `json:"distance_cm"`
	SpokenText  string  `json:"spoken_text"`
	AudioBase64 string  `json:"audio_base64,omitempty"`
}
