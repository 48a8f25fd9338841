package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

type TeamHandler struct {
	Service *services.TeamService
}

func NewTeamHandler(service *services.TeamService) *TeamHandler {
	return &TeamHandler{Service: service}
}

// ChangeUserRole toggles a user between member and supervisor within a
// team. The target-role half of the policy lives in the service, which is
// the only place that knows the target's current role.
func (h *TeamHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	var req struct {
		TargetID string `json:"target_id"`
		TeamID   string `json:"team_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.Service.ChangeUserRole(r.Context(), req.TargetID, req.TeamID, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("User role changed to %s successfully.", result.NewRole),
		"result":  result,
	})
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanCreateTeam(claims.Role) {
		writeMessage(w, http.StatusForbidden, "Members are not allowed to create a team")
		return
	}

	var req struct {
		Name       string `json:"name"`
		CustomerID string `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	team, err := h.Service.CreateTeam(r.Context(), req.Name, req.CustomerID, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Team created successfully",
		"team":    team.ID,
	})
}

func (h *TeamHandler) GetCustomerTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.GetTeamsByCustomer(r.Context(), mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}
