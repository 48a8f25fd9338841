package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

type MessageHandler struct {
	Messages *services.MessageService
	Users    *services.UserService
}

func NewMessageHandler(messages *services.MessageService, users *services.UserService) *MessageHandler {
	return &MessageHandler{Messages: messages, Users: users}
}

func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	var req services.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	// The token only carries the sender's id; entries denormalize the name
	// so the inbox can render without joining users.
	sender, err := h.Users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Messages.CreateMessage(r.Context(), req, claims, sender.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Thread != nil {
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "New conversation created with initial message.",
			"thread":  result.Thread,
			"entry":   result.Entry,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Message added to existing conversation.",
		"entry":   result.Entry,
	})
}

func (h *MessageHandler) GetAllMessages(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Messages.GetAllMessages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
