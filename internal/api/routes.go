package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msrishav-28/eduflow-dev/internal/config"
	"github.com/msrishav-28/eduflow-dev/internal/handler"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

func SetupRouter(cfg *config.Config, client *llm.Client) http.Handler {
	h := handler.New(cfg, client)
	authmw := middleware.NewAuth(cfg.JWTSecret)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitPerHour)
		r.Use(limiter.Middleware)
	}
	r.Use(middleware.LoggerMiddleware)
	r.Use(authmw.Optional)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(authmw.Require)

	// Root - API documentation
	r.HandleFunc("/", h.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)

	// Learning v1
	r.HandleFunc("/qa", h.QA).Methods(http.MethodPost)
	r.HandleFunc("/summarize", h.Summarize).Methods(http.MethodPost)
	r.HandleFunc("/mcq", h.MCQ).Methods(http.MethodPost)
	r.HandleFunc("/explain-code", h.ExplainCode).Methods(http.MethodPost)

	// Learning v2 (fichiers, styles, difficulté)
	r.HandleFunc("/v2/summarize", h.SummarizeAdvanced).Methods(http.MethodPost)
	r.HandleFunc("/v2/summarize/text", h.SummarizeText).Methods(http.MethodPost)
	r.HandleFunc("/v2/mcq", h.MCQAdvanced).Methods(http.MethodPost)
	r.HandleFunc("/v2/mcq/text", h.MCQText).Methods(http.MethodPost)

	// Code analysis
	r.HandleFunc("/code/analyze", h.AnalyzeCode).Methods(http.MethodPost)
	r.HandleFunc("/code/fix", h.FixCode).Methods(http.MethodPost)
	r.HandleFunc("/code/quick-check", h.QuickCheck).Methods(http.MethodPost)

	// Gamification
	authenticatedRoutes.HandleFunc("/gamification/stats", h.GetStats).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/gamification/activity", h.GetActivityHistory).Methods(http.MethodGet)
	r.HandleFunc("/gamification/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)

	// Monitoring
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/readiness", h.ReadinessCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
