package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError is the single boundary translating structured errors into a
// transport response. Guards and services hand their AppError up the
// pipeline; nothing else writes error bodies.
func WriteError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	response := ErrorResponse{
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}

	_ = json.NewEncoder(w).Encode(response)
}
