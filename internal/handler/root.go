package handler

import (
	"net/http"

	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "EduFlow API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "GET", "path": "/auth/me", "description": "Profil de l'utilisateur connecté"},
			},
			"learning": []map[string]string{
				{"method": "POST", "path": "/qa", "description": "Réponse à une question (depth: concise/balanced/detailed)"},
				{"method": "POST", "path": "/summarize", "description": "Résumé d'un texte en points clés"},
				{"method": "POST", "path": "/mcq", "description": "Génération de QCM sur un sujet"},
				{"method": "POST", "path": "/explain-code", "description": "Explication détaillée de code"},
			},
			"v2": []map[string]string{
				{"method": "POST", "path": "/v2/summarize", "description": "Résumé avancé (fichier ou texte, styles)"},
				{"method": "POST", "path": "/v2/summarize/text", "description": "Résumé avancé (JSON)"},
				{"method": "POST", "path": "/v2/mcq", "description": "QCM avancé (fichier ou texte, difficulté, type)"},
				{"method": "POST", "path": "/v2/mcq/text", "description": "QCM avancé (JSON)"},
			},
			"code": []map[string]string{
				{"method": "POST", "path": "/code/analyze", "description": "Analyse complète (erreurs, score qualité, corrections)"},
				{"method": "POST", "path": "/code/fix", "description": "Correction automatique du code"},
				{"method": "POST", "path": "/code/quick-check", "description": "Vérification rapide des erreurs"},
			},
			"gamification": []map[string]string{
				{"method": "GET", "path": "/gamification/stats", "description": "Points, niveau, badges, série, rang"},
				{"method": "GET", "path": "/gamification/activity", "description": "Journal d'activités récentes (param: limit)"},
				{"method": "GET", "path": "/gamification/leaderboard", "description": "Classement (params: period, limit)"},
			},
			"monitoring": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
				{"method": "GET", "path": "/readiness", "description": "État de la base et du fournisseur LLM"},
				{"method": "GET", "path": "/metrics", "description": "Métriques Prometheus"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour EduFlow - Assistant d'apprentissage avec gamification",
		},
	}

	utils.Success(w, routes)
}
