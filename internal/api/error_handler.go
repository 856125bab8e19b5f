package api

import (
	"net/http"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := errors.AsAppError(err)

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]errorBody{
		"error": {Code: appErr.Code, Message: appErr.Message},
	})
}
