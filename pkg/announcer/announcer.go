package announcer

import (
	"encoding/base64"
	"sync"

	"github.com/sirupsen/logrus"

	"ProximityGuard/pkg/audio"
)

// Event is one spoken announcement, fanned out to browser websocket
// subscribers once the audio has been synthesized.
type Event struct {
	Label       string  `json:"label,omitempty"`
	DistanceCM  float64 `json:"distance_cm,omitempty"`
	SpokenText  string  `json:"spoken_text"`
	AudioBase64 string  `json:"audio_base64,omitempty"`
}

// IAnnouncer accepts utterances without ever blocking the caller. A single
// worker drains a bounded queue, runs TTS and broadcasts the result; when the
// queue is full the utterance is dropped, so an alert storm can never stack
// up unbounded TTS work behind the detection loop.
type IAnnouncer interface {
	Announce(label string, distanceCM float64, text string) bool
	Subscribe(id string) <-chan Event
	Unsubscribe(id string)
	Close()
}

type announcer struct {
	queue       chan Event
	tts         audio.ITTS
	log         *logrus.Logger
	mu          sync.Mutex
	subscribers map[string]chan Event
	closed      bool
	closeOnce   sync.Once
	done        chan struct{}
}

const (
	queueSize      = 8
	subscriberSize = 16
)

func New(log *logrus.Logger, tts audio.ITTS) IAnnouncer {
	a := &announcer{
		queue:       make(chan Event, queueSize),
		tts:         tts,
		log:         log,
		subscribers: make(map[string]chan Event),
		done:        make(chan struct{}),
	}

	go a.worker()

	return a
}

// Announce enqueues an utterance and reports whether it was accepted.
// Dropping on a full queue is the documented policy: a stale warning spoken
// late is worse than a skipped one. After Close, utterances are rejected
// instead of panicking on the closed queue; the send happens under the lock
// so it cannot race Close.
func (a *announcer) Announce(label string, distanceCM float64, text string) bool {
	ev := Event{
		Label:      label,
		DistanceCM: distanceCM,
		SpokenText: text,
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		a.log.Debugf("Announcer is closed, dropping utterance: %q", text)
		return false
	}

	select {
	case a.queue <- ev:
		return true
	default:
		a.log.Warnf("Announcer queue full, dropping utterance: %q", text)
		return false
	}
}

func (a *announcer) Subscribe(id string) <-chan Event {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan Event, subscriberSize)
	if a.closed {
		close(ch)
		return ch
	}
	a.subscribers[id] = ch
	return ch
}

func (a *announcer) Unsubscribe(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ch, ok := a.subscribers[id]; ok {
		delete(a.subscribers, id)
		close(ch)
	}
}

func (a *announcer) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		close(a.queue)
		<-a.done

		a.mu.Lock()
		defer a.mu.Unlock()
		for id, ch := range a.subscribers {
			delete(a.subscribers, id)
			close(ch)
		}
	})
}

func (a *announcer) worker() {
	defer close(a.done)

	for ev := range a.queue {
		if a.tts != nil {
			audioBytes, err := a.tts.GenerateAudio(ev.SpokenText)
			if err != nil {
				// Announcer failures never propagate; the visual alert
				// stream still carries the event.
				a.log.Warnf("TTS synthesis failed: %v", err)
			} else {
				ev.AudioBase64 = base64.StdEncoding.EncodeToString(audioBytes)
			}
		}

		a.broadcast(ev)
	}
}

func (a *announcer) broadcast(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, ch := range a.subscribers {
		select {
		case ch <- ev:
		default:
			a.log.Debugf("Subscriber %s is slow, dropping event", id)
		}
	}
}
