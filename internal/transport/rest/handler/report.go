package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"alzmate/internal/service"
)

// ReportHandler handles combined report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// CombinedReport handles GET /v1/patients/{patientId}/reports/combined
func (h *ReportHandler) CombinedReport(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	report, err := h.reportSvc.GenerateCombinedReport(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
