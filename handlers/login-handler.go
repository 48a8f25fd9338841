package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/UtopicUnicorn995/teamstarAPI/models"
)

// Authenticator is the slice of the user service the login route needs.
type Authenticator interface {
	Authenticate(ctx context.Context, phone, pin string) (models.User, string, error)
}

type LoginHandler struct {
	Auth Authenticator
}

func NewLoginHandler(auth Authenticator) *LoginHandler {
	return &LoginHandler{Auth: auth}
}

type LoginRequest struct {
	Phone string `json:"phone"`
	Pin   string `json:"pin"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	_, token, err := h.Auth.Authenticate(r.Context(), req.Phone, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
	})
}
