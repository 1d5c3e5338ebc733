package handler

import (
	"net/http"
	"strconv"

	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// GetStats retourne les statistiques de gamification de l'utilisateur.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := gamification.GetUserStats(r.Context(), user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute stats: "+err.Error())
		return
	}

	utils.Success(w, stats)
}

// GetActivityHistory retourne le journal d'activités de l'utilisateur
// (param: limit, 20 par défaut).
func (h *Handler) GetActivityHistory(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			utils.Error(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	activities, err := gamification.GetRecentActivity(r.Context(), user.ID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load activity history: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"activities": activities,
		"count":      len(activities),
	})
}

// GetLeaderboard retourne le classement (params: period, limit).
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all_time"
	}
	if period != "all_time" && period != "monthly" {
		utils.Error(w, http.StatusBadRequest, "period must be one of: all_time, monthly")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			utils.Error(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := gamification.GetLeaderboard(r.Context(), period, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load leaderboard: "+err.Error())
		return
	}

	utils.Success(w, map[string]interface{}{
		"period":      period,
		"leaderboard": entries,
	})
}
