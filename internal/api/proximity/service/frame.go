package proximityService

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"ProximityGuard/internal/entity"
)

var (
	clrUnsafe = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	clrSafe   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

func resolution(cfg Config) image.Point {
	return image.Pt(cfg.FrameWidth, cfg.FrameHeight)
}

func encodeJPEG(img *gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *img,
		[]int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}

// collapseDetections turns the per-box results into the label→distance map
// the tracker consumes. When a label shows up in several boxes the closest
// one wins, the warning should reflect the nearest instance.
func collapseDetections(detections []entity.Detection, cfg Config) map[string]float64 {
	current := make(map[string]float64, len(detections))

	for _, det := range detections {
		distance := EstimateDistance(cfg.KnownWidthCM, cfg.FocalLength, det.Box.PixelWidth())
		if existing, ok := current[det.Label]; !ok || distance < existing {
			current[det.Label] = distance
		}
	}

	return current
}

// annotateFrame draws the detection boxes onto the streamed frame, red for
// objects inside the safe distance, green otherwise.
func annotateFrame(img *gocv.Mat, detections []entity.Detection, cfg Config) {
	for _, det := range detections {
		distance := EstimateDistance(cfg.KnownWidthCM, cfg.FocalLength, det.Box.PixelWidth())

		clr := clrSafe
		state := "SAFE"
		if distance < cfg.SafeDistanceCM {
			clr = clrUnsafe
			state = "UNSAFE"
		}

		label := fmt.Sprintf("%s - %s (%dcm)", det.Label, state, int(distance))
		rect := image.Rect(det.Box.X1, det.Box.Y1, det.Box.X2, det.Box.Y2)

		gocv.Rectangle(img, rect, clr, 2)
		gocv.PutText(img, label, image.Pt(det.Box.X1, det.Box.Y1-10),
			gocv.FontHersheySimplex, 0.6, clr, 2)
	}
}
