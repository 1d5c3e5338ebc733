package handler

import (
	"net/http"

	"github.com/msrishav-28/eduflow-dev/internal/config"
	"github.com/msrishav-28/eduflow-dev/internal/database"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// Handler regroupe les dépendances partagées par tous les endpoints.
type Handler struct {
	cfg *config.Config
	llm *llm.Client
}

func New(cfg *config.Config, client *llm.Client) *Handler {
	return &Handler{cfg: cfg, llm: client}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// ReadinessCheck rapporte l'état de la base et du fournisseur LLM.
// Répond toujours 200: un composant dégradé est signalé, pas bloquant.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := database.Ping(r.Context()); err != nil {
		dbStatus = "unavailable"
	}

	llmStatus := "not_configured"
	if h.llm.Configured() {
		llmStatus = h.llm.Provider()
	}

	utils.Success(w, map[string]string{
		"database":     dbStatus,
		"llm_provider": llmStatus,
	})
}
