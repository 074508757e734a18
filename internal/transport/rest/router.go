package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"alzmate/internal/service"
	"alzmate/internal/transport/rest/handler"
	"alzmate/internal/transport/rest/middleware"
	"alzmate/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	EmotionService  *service.EmotionService
	ProgressService *service.ProgressService
	ReportService   *service.ReportService
	WSHub           *ws.Hub
	Logger          *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	emotionHandler := handler.NewEmotionHandler(c.EmotionService)
	progressHandler := handler.NewProgressHandler(c.ProgressService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: login plus the analyze endpoints the patient app calls
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/emotions/analyze", emotionHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/emotions/analyze/audio", emotionHandler.AnalyzeWithAudio).Methods("POST", "OPTIONS")
	v1.HandleFunc("/reminders/{reminderId}/missed", progressHandler.ReminderMissed).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/alerts", wsHandler.AlertsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Caregiver routes (require caregiver auth)
	caregiverRoutes := v1.NewRoute().Subrouter()
	caregiverRoutes.Use(authMW.RequireCaregiver)

	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions", emotionHandler.Entries).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/trends", emotionHandler.Trends).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/daily/{date}", emotionHandler.DailySummary).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/weekly-summary", emotionHandler.WeeklySummary).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/shift", emotionHandler.DetectShift).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/persistence", emotionHandler.Persistence).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/volatility", emotionHandler.Volatility).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/emotions/trend-summary", emotionHandler.TrendSummary).Methods("GET", "OPTIONS")

	caregiverRoutes.HandleFunc("/patients/{patientId}/progress/score", progressHandler.WeeklyScore).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/progress/report", progressHandler.WeeklyReport).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/progress/baseline", progressHandler.Baseline).Methods("GET", "OPTIONS")
	caregiverRoutes.HandleFunc("/patients/{patientId}/progress/decline", progressHandler.Decline).Methods("GET", "OPTIONS")

	caregiverRoutes.HandleFunc("/patients/{patientId}/reports/combined", reportHandler.CombinedReport).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
