package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

type EventHandler struct {
	Service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{Service: service}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	var req services.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	event, err := h.Service.CreateEvent(r.Context(), req, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Event created successfully",
		"eventId": event.ID,
	})
}

// AppVersionCode tells the mobile clients whether they must update. Static
// for now; bump with releases.
func AppVersionCode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"versionCode": "2"})
}
