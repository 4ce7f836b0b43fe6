package proximity

import (
	"ProximityGuard/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrBadRequest          = response.NewError(http.StatusBadRequest, "bad request")
	ErrCameraUnavailable   = response.NewError(http.StatusServiceUnavailable, "could not open any camera device")
	ErrNotRunning          = response.NewError(http.StatusConflict, "detection is not running")
	ErrNoFrameAvailable    = response.NewError(http.StatusNotFound, "no frame has been captured yet")
)
