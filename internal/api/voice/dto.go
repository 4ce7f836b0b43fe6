package voice

type CommandIntent string

const (
	IntentStart   CommandIntent = "start_detection"
	IntentStop    CommandIntent = "stop_detection"
	IntentStatus  CommandIntent = "status"
	IntentUnknown CommandIntent = "unknown"
)

type CommandResponse struct {
	Transcript string        `json:"transcript"`
	Intent     CommandIntent `json:"intent"`
	Message    string        `json:"message"`
}
