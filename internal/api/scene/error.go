package scene

import (
	"ProximityGuard/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrNoImageAvailable    = response.NewError(http.StatusBadRequest, "no image provided and no live frame available")
	ErrDescriptionFailed   = response.NewError(http.StatusBadGateway, "scene description service failed")
)
