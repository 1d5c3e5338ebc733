package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

type QARequest struct {
	Question string `json:"question"`
	Depth    string `json:"depth"`
}

type QAResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Depth     string    `json:"depth"`
	Timestamp time.Time `json:"timestamp"`
}

// QA répond à une question avec le niveau de détail demandé.
func (h *Handler) QA(w http.ResponseWriter, r *http.Request) {
	var req QARequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		utils.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Depth == "" {
		req.Depth = "balanced"
	}
	if !llm.ValidDepth(req.Depth) {
		utils.Error(w, http.StatusBadRequest, "depth must be one of: concise, balanced, detailed")
		return
	}

	answer, err := h.llm.Call(r.Context(), llm.BuildQAPrompt(req.Question, req.Depth), llm.Options{Temperature: 0.7, MaxTokens: 1500})
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivityQA, map[string]interface{}{"depth": req.Depth})

	utils.Success(w, QAResponse{
		ID:        uuid.New().String(),
		Question:  req.Question,
		Answer:    strings.TrimSpace(answer),
		Depth:     req.Depth,
		Timestamp: time.Now().UTC(),
	})
}

// llmError traduit une erreur de génération en réponse HTTP,
// sans exposer les détails du fournisseur.
func (h *Handler) llmError(w http.ResponseWriter, err error) {
	if err == llm.ErrNotConfigured {
		utils.Error(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}
	utils.Error(w, http.StatusBadGateway, "generation failed, please try again")
}

// logActivity journalise l'activité si la requête est authentifiée.
// Appelé uniquement après un résultat réussi: les points ne sont
// jamais accordés pour un appel en échec.
func (h *Handler) logActivity(r *http.Request, activityType string, metadata map[string]interface{}) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		return // requête anonyme
	}
	if _, earned, err := gamification.LogActivity(r.Context(), user.ID, activityType, metadata); err != nil {
		utils.LogError("log activity %s for %s: %v", activityType, user.ID, err)
	} else if len(earned) > 0 {
		utils.LogInfo("badges earned by %s: %v", user.ID, earned)
	}
}
