package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	user, err := h.Service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// FindUserID is the unauthenticated lookup the password-recovery screen
// uses: email first, phone as fallback.
func (h *UserHandler) FindUserID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.Service.FindUser(r.Context(), req.Email, req.PhoneNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User found.",
		"user":    user,
	})
}

// RegisterNewUser bootstraps an organization with its admin account.
func (h *UserHandler) RegisterNewUser(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, customer, err := h.Service.RegisterAdmin(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "New user has been registered successfully",
		"user":     user.ID,
		"customer": customer.ID,
	})
}

// AddMember lets an admin or supervisor register a member account.
func (h *UserHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanInviteMember(claims.Role) {
		writeMessage(w, http.StatusForbidden, "The inviter is not an admin or supervisor")
		return
	}

	var req services.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, pin, err := h.Service.InviteMember(r.Context(), req, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "New user has been registered successfully",
		"user":    user.ID,
		"pin":     pin,
	})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanDeleteUser(claims.Role) {
		writeMessage(w, http.StatusForbidden, "Members are not allowed to delete users")
		return
	}

	if err := h.Service.DeleteUser(r.Context(), mux.Vars(r)["user_id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	var patch services.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.Service.UpdateCurrentUser(r.Context(), patch, claims); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "User updated successfully")
}

// ForgotPassword replaces a PIN by user id. Unauthenticated recovery path.
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.Service.ResetPin(r.Context(), req.ID, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated successfully")
}
