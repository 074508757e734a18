package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"alzmate/internal/analysis"
	"alzmate/internal/model"
	"alzmate/internal/service"
)

const maxAudioUploadBytes = 25 << 20

// EmotionHandler handles journal analysis and emotion analytics endpoints
type EmotionHandler struct {
	emotionSvc *service.EmotionService
}

// NewEmotionHandler creates a new emotion handler
func NewEmotionHandler(emotionSvc *service.EmotionService) *EmotionHandler {
	return &EmotionHandler{emotionSvc: emotionSvc}
}

type analyzeRequest struct {
	PatientID      string `json:"patientId"`
	Text           string `json:"text"`
	JournalEntryID string `json:"journalEntryId,omitempty"`
}

// Analyze handles POST /v1/emotions/analyze
func (h *EmotionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientID == "" {
		writeError(w, http.StatusBadRequest, "patientId is required")
		return
	}

	entry, err := h.emotionSvc.AnalyzeEntry(r.Context(), req.PatientID, req.Text, req.JournalEntryID)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// AnalyzeWithAudio handles POST /v1/emotions/analyze/audio (multipart)
func (h *EmotionHandler) AnalyzeWithAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	patientID := r.FormValue("patientId")
	if patientID == "" {
		writeError(w, http.StatusBadRequest, "patientId is required")
		return
	}
	text := r.FormValue("text")
	journalEntryID := r.FormValue("journalEntryId")

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	entry, err := h.emotionSvc.AnalyzeEntryWithAudio(r.Context(), patientID, text, journalEntryID, file, header.Filename)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func writeAnalyzeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrClassifierUpstream) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// Entries handles GET /v1/patients/{patientId}/emotions
func (h *EmotionHandler) Entries(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var start, end *time.Time
	if t, ok := parseTimeParam(r, "start"); ok {
		start = &t
	}
	if t, ok := parseTimeParam(r, "end"); ok {
		end = &t
	}
	limit := int64(queryInt(r, "limit", 0))

	entries, err := h.emotionSvc.Entries(r.Context(), patientID, start, end, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.EmotionEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Trends handles GET /v1/patients/{patientId}/emotions/trends
func (h *EmotionHandler) Trends(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	days := queryInt(r, "days", analysis.DefaultTrendDays)

	report, err := h.emotionSvc.Trends(r.Context(), patientID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DailySummary handles GET /v1/patients/{patientId}/emotions/daily/{date}
func (h *EmotionHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := h.emotionSvc.DailySummary(r.Context(), vars["patientId"], vars["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// WeeklySummary handles GET /v1/patients/{patientId}/emotions/weekly-summary
func (h *EmotionHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	summary, err := h.emotionSvc.WeeklySummary(r.Context(), patientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// DetectShift handles GET /v1/patients/{patientId}/emotions/shift
func (h *EmotionHandler) DetectShift(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	emotion := model.Emotion(r.URL.Query().Get("emotion"))
	if emotion == "" {
		writeError(w, http.StatusBadRequest, "emotion query parameter is required")
		return
	}
	days := queryInt(r, "days", analysis.DefaultTrendDays)

	result, err := h.emotionSvc.DetectShift(r.Context(), patientID, emotion, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Persistence handles GET /v1/patients/{patientId}/emotions/persistence
func (h *EmotionHandler) Persistence(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	days := queryInt(r, "days", analysis.PersistentDaysThreshold)

	result, err := h.emotionSvc.CheckPersistentNegative(r.Context(), patientID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Volatility handles GET /v1/patients/{patientId}/emotions/volatility
func (h *EmotionHandler) Volatility(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	days := queryInt(r, "days", analysis.DefaultTrendDays)

	result, err := h.emotionSvc.DetectVolatility(r.Context(), patientID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TrendSummary handles GET /v1/patients/{patientId}/emotions/trend-summary
func (h *EmotionHandler) TrendSummary(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	days := queryInt(r, "days", analysis.DefaultTrendDays)

	summary, err := h.emotionSvc.TrendSummary(r.Context(), patientID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func parseTimeParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}
