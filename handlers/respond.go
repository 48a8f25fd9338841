package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/UtopicUnicorn995/teamstarAPI/errs"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Could not encode response: %v", err)
		}
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a taxonomy error onto its HTTP status. Store failures log
// the cause and hide it from the caller.
func writeError(w http.ResponseWriter, err error) {
	status := errs.StatusCode(err)
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: %v", err)
		writeMessage(w, status, "Internal server error")
		return
	}
	// net/http discards any body written after a 304; the status is the
	// whole answer.
	if status == http.StatusNotModified {
		w.WriteHeader(status)
		return
	}
	writeMessage(w, status, err.Error())
}
