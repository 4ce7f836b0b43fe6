package proximityService

// EstimateDistance converts a bounding box pixel width into an estimated
// distance in centimeters using the pinhole model
// distance = knownWidth * focalLength / pixelWidth.
//
// A zero pixel width maps to distance 0, which counts as unsafely close.
// That is deliberate: a degenerate box means the detector could not size the
// object, and staying silent about it is the worse failure mode.
func EstimateDistance(knownWidthCM, focalLength float64, pixelWidth int) float64 {
	if pixelWidth <= 0 {
		return 0
	}
	return (knownWidthCM * focalLength) / float64(pixelWidth)
}
