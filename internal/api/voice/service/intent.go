package voiceService

import (
	"strings"

	"ProximityGuard/internal/api/voice"
)

var intentKeywords = map[voice.CommandIntent][]string{
	voice.IntentStop:   {"stop", "pause", "halt", "turn off"},
	voice.IntentStart:  {"start", "begin", "activate", "turn on"},
	voice.IntentStatus: {"status", "running", "are you on", "state"},
}

// matchIntent maps a transcript onto one of the control intents with plain
// keyword matching. Stop is checked before start so "stop starting the
// detection" never fires the wrong way.
func matchIntent(transcript string) voice.CommandIntent {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return voice.IntentUnknown
	}

	for _, intent := range []voice.CommandIntent{voice.IntentStop, voice.IntentStart, voice.IntentStatus} {
		for _, keyword := range intentKeywords[intent] {
			if strings.Contains(text, keyword) {
				return intent
			}
		}
	}

	return voice.IntentUnknown
}
