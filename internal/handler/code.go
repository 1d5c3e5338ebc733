package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msrishav-28/eduflow-dev/internal/analyzer"
	"github.com/msrishav-28/eduflow-dev/internal/fileproc"
	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// anonymousCodeLimit est la taille de code maximale sans compte.
const anonymousCodeLimit = 10000

type CodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type ExplainCodeResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Explanation string    `json:"explanation"`
	Timestamp   time.Time `json:"timestamp"`
}

// ExplainCode explique un extrait de code pas à pas (v1).
func (h *Handler) ExplainCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}

	prompt := llm.BuildCodeExplainPrompt(req.Code, req.Language)
	explanation, err := h.llm.Call(r.Context(), prompt, llm.Options{Temperature: 0.7, MaxTokens: 2000})
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivityCodeExplain, map[string]interface{}{"language": req.Language})

	utils.Success(w, ExplainCodeResponse{
		ID:          uuid.New().String(),
		Code:        req.Code,
		Language:    req.Language,
		Explanation: strings.TrimSpace(explanation),
		Timestamp:   time.Now().UTC(),
	})
}

// AnalyzeCode fait l'analyse complète d'un code collé ou uploadé.
func (h *Handler) AnalyzeCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	code := r.FormValue("code")
	language := r.FormValue("language")
	if language == "" {
		language = "python"
	}
	filename := ""
	uploaded := false

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		code = fileproc.DecodeText(content)
		filename = header.Filename
		uploaded = true

		if detected := analyzer.DetectLanguage(filename); detected != "unknown" {
			language = detected
		}
		utils.LogInfo("analyzing code file: %s, detected language: %s", filename, language)
	}

	if strings.TrimSpace(code) == "" {
		utils.Error(w, http.StatusBadRequest, "either code or file must be provided")
		return
	}

	// Plafond de taille selon le compte, déblocable avec les points
	maxSize := anonymousCodeLimit
	if user, err := middleware.GetUserFromContext(r); err == nil {
		maxSize = user.MaxFileSize
	}
	if len(code) > maxSize {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf(
			"code too long (%d chars), your limit: %d chars. Earn points to unlock larger limits!",
			len(code), maxSize))
		return
	}

	result, err := analyzer.AnalyzeCode(r.Context(), h.llm, code, language, filename)
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivityCodeExplain, map[string]interface{}{
		"language":      result.Language,
		"quality_score": result.QualityScore,
		"error_count":   result.ErrorCount,
	})
	if uploaded {
		h.grantUploadBonus(r)
	}

	utils.Success(w, result)
}

// FixCode retourne la version corrigée du code avec les changements.
func (h *Handler) FixCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}

	result, err := analyzer.FixCode(r.Context(), h.llm, req.Code, req.Language)
	if err != nil {
		if err == llm.ErrNotConfigured {
			h.llmError(w, err)
			return
		}
		utils.Error(w, http.StatusBadGateway, "fix generation failed, please try again")
		return
	}

	h.logActivity(r, gamification.ActivityCodeFix, map[string]interface{}{"language": req.Language})

	utils.Success(w, result)
}

// QuickCheck fait une vérification rapide des erreurs critiques.
func (h *Handler) QuickCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}

	result, err := analyzer.QuickCheck(r.Context(), h.llm, req.Code, req.Language)
	if err != nil {
		h.llmError(w, err)
		return
	}

	utils.Success(w, result)
}

func (h *Handler) decodeCodeRequest(w http.ResponseWriter, r *http.Request) (*CodeRequest, bool) {
	var req CodeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if strings.TrimSpace(req.Code) == "" {
		utils.Error(w, http.StatusBadRequest, "code is required")
		return nil, false
	}
	if req.Language == "" {
		req.Language = "python"
	}
	return &req, true
}
