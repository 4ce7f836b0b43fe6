package voiceService

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ProximityGuard/internal/api/voice"
)

func TestMatchIntent(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		expected   voice.CommandIntent
	}{
		{name: "plain start", transcript: "start detection", expected: voice.IntentStart},
		{name: "turn on phrasing", transcript: "please turn on the camera", expected: voice.IntentStart},
		{name: "plain stop", transcript: "stop", expected: voice.IntentStop},
		{name: "pause phrasing", transcript: "Pause the detection for a while", expected: voice.IntentStop},
		{name: "status question", transcript: "are you on right now?", expected: voice.IntentStatus},
		{name: "running question", transcript: "is detection running", expected: voice.IntentStatus},
		{name: "stop wins over start", transcript: "stop starting the detection", expected: voice.IntentStop},
		{name: "unrelated speech", transcript: "what a lovely day", expected: voice.IntentUnknown},
		{name: "empty transcript", transcript: "", expected: voice.IntentUnknown},
		{name: "whitespace only", transcript: "   \t ", expected: voice.IntentUnknown},
		{name: "mixed case", transcript: "START DETECTION NOW", expected: voice.IntentStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchIntent(tt.transcript))
		})
	}
}
