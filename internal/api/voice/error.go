package voice

import (
	"ProximityGuard/pkg/response"
	"net/http"
)

var (
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
	ErrInvalidAudioFile    = response.NewError(http.StatusBadRequest, "invalid audio file")
	ErrTranscriptionFailed = response.NewError(http.StatusBadGateway, "failed to transcribe audio")
)
