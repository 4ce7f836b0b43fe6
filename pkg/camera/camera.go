package camera

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// ICamera wraps the video capture device. Open probes a small range of
// device indexes because the useful camera is not always index 0, matching
// how the device enumerates on most single-board hosts.
type ICamera interface {
	Open() error
	Read(dst *gocv.Mat) bool
	Reopen() error
	IsOpened() bool
	Close() error
}

type capture struct {
	mu       sync.Mutex
	cap      *gocv.VideoCapture
	maxIndex int
	width    int
	height   int
	fps      int
	log      *logrus.Logger
}

func New(log *logrus.Logger, width, height, fps int) ICamera {
	maxIndex := 3
	if raw := os.Getenv("CAMERA_MAX_INDEX"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxIndex = v
		}
	}

	return &capture{
		maxIndex: maxIndex,
		width:    width,
		height:   height,
		fps:      fps,
		log:      log,
	}
}

func (c *capture) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open()
}

func (c *capture) open() error {
	for i := 0; i < c.maxIndex; i++ {
		cap, err := gocv.VideoCaptureDevice(i)
		if err != nil {
			c.log.Debugf("Camera index %d not available: %v", i, err)
			continue
		}
		if !cap.IsOpened() {
			cap.Close()
			continue
		}

		cap.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
		cap.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
		cap.Set(gocv.VideoCaptureFPS, float64(c.fps))
		cap.Set(gocv.VideoCaptureBufferSize, 1)

		c.cap = cap
		c.log.Infof("Camera opened on device index %d", i)
		return nil
	}

	return fmt.Errorf("could not open any camera device in range 0..%d", c.maxIndex-1)
}

func (c *capture) Read(dst *gocv.Mat) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return false
	}
	return c.cap.Read(dst)
}

// Reopen releases the current device and probes again, used when a frame
// read fails mid-stream.
func (c *capture) Reopen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap != nil {
		c.cap.Close()
		c.cap = nil
	}
	return c.open()
}

func (c *capture) IsOpened() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cap != nil && c.cap.IsOpened()
}

func (c *capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return nil
	}
	err := c.cap.Close()
	c.cap = nil
	return err
}
