package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/models"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing credentials")
		return
	}
	if !models.CanCreateReport(claims.Role) {
		writeMessage(w, http.StatusForbidden, "Only members can file reports")
		return
	}

	var req services.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	report, err := h.Service.CreateReport(r.Context(), req, claims)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Report created successfully",
		"report":  report.ID,
	})
}

func (h *ReportHandler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.GetAllReports(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.GetReportByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) GetCustomerReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.GetReportsByCustomer(r.Context(), mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteReport(r.Context(), mux.Vars(r)["report_id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Report deleted successfully")
}
