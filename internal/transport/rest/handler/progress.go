package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"alzmate/internal/service"
)

// ProgressHandler handles weekly progress endpoints
type ProgressHandler struct {
	progressSvc *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressSvc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// WeeklyScore handles GET /v1/patients/{patientId}/progress/score
// Computes the current week without persisting it.
func (h *ProgressHandler) WeeklyScore(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var weekStart *time.Time
	if t, ok := parseTimeParam(r, "weekStart"); ok {
		weekStart = &t
	}

	score, err := h.progressSvc.CalculateWeeklyScore(r.Context(), patientID, weekStart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// WeeklyReport handles GET /v1/patients/{patientId}/progress/report
// Generates the report and appends the week's score to the history.
func (h *ProgressHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	report, err := h.progressSvc.GenerateWeeklyReport(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ReminderMissed handles POST /v1/reminders/{reminderId}/missed
// Flags the reminder as missed; missed appointments alert caregivers.
func (h *ProgressHandler) ReminderMissed(w http.ResponseWriter, r *http.Request) {
	reminderID := mux.Vars(r)["reminderId"]

	reminder, err := h.progressSvc.MarkReminderMissed(r.Context(), reminderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reminder == nil {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// Baseline handles GET /v1/patients/{patientId}/progress/baseline
func (h *ProgressHandler) Baseline(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	baseline, err := h.progressSvc.BaselineScore(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"patientId": patientID,
		"baseline":  baseline,
	})
}

// Decline handles GET /v1/patients/{patientId}/progress/decline
// Evaluates the current week against the stored baseline without persisting.
func (h *ProgressHandler) Decline(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	current, err := h.progressSvc.CalculateWeeklyScore(r.Context(), patientID, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.progressSvc.DetectDecline(r.Context(), patientID, current.Score)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
