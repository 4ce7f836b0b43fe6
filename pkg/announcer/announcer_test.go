package announcer

import (
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTTS struct {
	entered chan struct{}
	gate    chan struct{}
	audio   []byte
	err     error
}

func (f *fakeTTS) GenerateAudio(text string) ([]byte, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.audio, f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "subscriber channel closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for announcement")
		return Event{}
	}
}

func TestAnnounceBroadcastsWithAudio(t *testing.T) {
	a := New(testLogger(), &fakeTTS{audio: []byte("mp3-bytes")})
	defer a.Close()

	ch := a.Subscribe("ws-1")

	ok := a.Announce("person", 50, "Warning! person at 50 centimeters")
	require.True(t, ok)

	ev := waitEvent(t, ch)
	assert.Equal(t, "person", ev.Label)
	assert.Equal(t, 50.0, ev.DistanceCM)
	assert.Equal(t, "Warning! person at 50 centimeters", ev.SpokenText)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3-bytes")), ev.AudioBase64)
}

func TestAnnounceTTSFailureStillBroadcasts(t *testing.T) {
	a := New(testLogger(), &fakeTTS{err: assert.AnError})
	defer a.Close()

	ch := a.Subscribe("ws-1")
	require.True(t, a.Announce("chair", 80, "Warning! chair at 80 centimeters"))

	ev := waitEvent(t, ch)
	assert.Equal(t, "Warning! chair at 80 centimeters", ev.SpokenText)
	assert.Empty(t, ev.AudioBase64)
}

func TestAnnounceDropsWhenQueueFull(t *testing.T) {
	tts := &fakeTTS{
		entered: make(chan struct{}, queueSize+2),
		gate:    make(chan struct{}),
	}
	a := New(testLogger(), tts)

	// Park the worker inside TTS so nothing drains while the queue fills.
	require.True(t, a.Announce("person", 50, "warning"))
	<-tts.entered

	for i := 0; i < queueSize; i++ {
		require.True(t, a.Announce("person", 50, "warning"))
	}

	assert.False(t, a.Announce("person", 50, "one more"), "saturated queue must drop")

	close(tts.gate)
	a.Close()
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	a := New(testLogger(), &fakeTTS{})
	defer a.Close()

	ch := a.Subscribe("ws-1")
	a.Unsubscribe("ws-1")

	_, ok := <-ch
	assert.False(t, ok, "unsubscribed channel should be closed")
}

func TestAnnounceAfterCloseIsRejected(t *testing.T) {
	a := New(testLogger(), &fakeTTS{})
	a.Close()

	// Shutdown can race a final alert out of the detection loop; the
	// utterance must be dropped, never sent on the closed queue.
	accepted := true
	assert.NotPanics(t, func() {
		accepted = a.Announce("person", 50, "warning")
	})
	assert.False(t, accepted)
}

func TestSubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	a := New(testLogger(), &fakeTTS{})
	a.Close()

	ch := a.Subscribe("ws-late")
	_, ok := <-ch
	assert.False(t, ok)
}

func TestCloseIsIdempotentAndClosesSubscribers(t *testing.T) {
	a := New(testLogger(), &fakeTTS{})
	ch := a.Subscribe("ws-1")

	a.Close()
	assert.NotPanics(t, func() { a.Close() })

	_, ok := <-ch
	assert.False(t, ok)
}
