package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msrishav-28/eduflow-dev/internal/fileproc"
	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

const (
	maxExtractedTextLength = 50000
	chunkingThreshold      = 8000
	maxUploadBytes         = 10 << 20 // 10 MiB par requête multipart
)

type SummarizeRequest struct {
	Text      string `json:"text"`
	MaxPoints int    `json:"max_points"`
}

type SummarizeResponse struct {
	ID           string    `json:"id"`
	OriginalText string    `json:"original_text,omitempty"`
	Summary      []string  `json:"summary"`
	Timestamp    time.Time `json:"timestamp"`
}

type SummarizeAdvancedRequest struct {
	Text      string `json:"text"`
	Style     string `json:"style"`
	MaxPoints int    `json:"max_points"`
}

type SummarizeAdvancedResponse struct {
	ID             string    `json:"id"`
	OriginalLength int       `json:"original_length"`
	Summary        []string  `json:"summary"`
	Style          string    `json:"style"`
	Timestamp      time.Time `json:"timestamp"`
	Source         string    `json:"source"`
}

// Summarize résume un texte en points clés (v1).
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		utils.Error(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.MaxPoints <= 0 {
		req.MaxPoints = 5
	}
	req.MaxPoints = h.clampMaxPoints(r, req.MaxPoints)

	prompt := llm.BuildSummaryPrompt(req.Text, req.MaxPoints)
	response, err := h.llm.Call(r.Context(), prompt, llm.Options{Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivitySummarize, map[string]interface{}{"max_points": req.MaxPoints})

	utils.Success(w, SummarizeResponse{
		ID:           uuid.New().String(),
		OriginalText: req.Text,
		Summary:      llm.ParseBullets(response, req.MaxPoints),
		Timestamp:    time.Now().UTC(),
	})
}

// SummarizeAdvanced résume un texte ou un fichier uploadé (v2).
// Les textes longs sont résumés par morceaux puis condensés.
func (h *Handler) SummarizeAdvanced(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	text, source, uploaded, ok := h.textFromForm(w, r)
	if !ok {
		return
	}

	style := r.FormValue("style")
	if style == "" {
		style = "balanced"
	}
	if !llm.ValidStyle(style) {
		utils.Error(w, http.StatusBadRequest, "style must be one of: short_notes, long_notes, balanced, bullet_points, detailed")
		return
	}

	maxPoints := 5
	if v := r.FormValue("max_points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Error(w, http.StatusBadRequest, "max_points must be a positive integer")
			return
		}
		maxPoints = n
	}
	maxPoints = h.clampMaxPoints(r, maxPoints)

	summary, err := h.generateSummary(r.Context(), text, style, maxPoints)
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivitySummarize, map[string]interface{}{"style": style, "source": source})
	if uploaded {
		h.grantUploadBonus(r)
	}

	utils.Success(w, SummarizeAdvancedResponse{
		ID:             uuid.New().String(),
		OriginalLength: len(text),
		Summary:        summary,
		Style:          style,
		Timestamp:      time.Now().UTC(),
		Source:         source,
	})
}

// SummarizeText est la variante JSON du résumé avancé (v2).
func (h *Handler) SummarizeText(w http.ResponseWriter, r *http.Request) {
	var req SummarizeAdvancedRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		utils.Error(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Style == "" {
		req.Style = "balanced"
	}
	if !llm.ValidStyle(req.Style) {
		utils.Error(w, http.StatusBadRequest, "style must be one of: short_notes, long_notes, balanced, bullet_points, detailed")
		return
	}
	if req.MaxPoints <= 0 {
		req.MaxPoints = 5
	}
	req.MaxPoints = h.clampMaxPoints(r, req.MaxPoints)

	if err := fileproc.ValidateTextLength(req.Text, maxExtractedTextLength); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.generateSummary(r.Context(), req.Text, req.Style, req.MaxPoints)
	if err != nil {
		h.llmError(w, err)
		return
	}

	h.logActivity(r, gamification.ActivitySummarize, map[string]interface{}{"style": req.Style, "source": "text"})

	utils.Success(w, SummarizeAdvancedResponse{
		ID:             uuid.New().String(),
		OriginalLength: len(req.Text),
		Summary:        summary,
		Style:          req.Style,
		Timestamp:      time.Now().UTC(),
		Source:         "text",
	})
}

// generateSummary appelle le modèle, par morceaux pour les textes longs.
func (h *Handler) generateSummary(ctx context.Context, text, style string, maxPoints int) ([]string, error) {
	if len(text) <= chunkingThreshold {
		return h.summarizeOnce(ctx, text, style, maxPoints)
	}

	chunks := fileproc.ChunkText(text, 6000, 200)
	utils.LogInfo("text split into %d chunks for summarization", len(chunks))

	perChunk := maxPoints / len(chunks)
	if perChunk < 3 {
		perChunk = 3
	}

	var all []string
	for _, chunk := range chunks {
		bullets, err := h.summarizeOnce(ctx, chunk, style, perChunk)
		if err != nil {
			return nil, err
		}
		all = append(all, bullets...)
	}

	// Condenser les résumés intermédiaires en points finaux
	return h.summarizeOnce(ctx, strings.Join(all, "\n"), style, maxPoints)
}

func (h *Handler) summarizeOnce(ctx context.Context, text, style string, maxPoints int) ([]string, error) {
	prompt := llm.BuildStyledSummaryPrompt(text, style, maxPoints)
	response, err := h.llm.Call(ctx, prompt, llm.Options{Temperature: 0.5, MaxTokens: 2000})
	if err != nil {
		return nil, err
	}
	return llm.ParseBullets(response, maxPoints), nil
}

// textFromForm récupère le texte du formulaire multipart, directement
// ou extrait d'un fichier uploadé. Répond lui-même en cas d'erreur.
func (h *Handler) textFromForm(w http.ResponseWriter, r *http.Request) (text, source string, uploaded, ok bool) {
	source = "text"

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "could not read uploaded file")
			return "", "", false, false
		}

		extracted, fileType, err := fileproc.ExtractText(header.Filename, content)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return "", "", false, false
		}
		utils.LogInfo("processed %s file: %s, extracted %d chars", fileType, header.Filename, len(extracted))
		text = extracted
		source = fmt.Sprintf("file (%s)", fileType)
		uploaded = true
	} else {
		text = r.FormValue("text")
	}

	if strings.TrimSpace(text) == "" {
		utils.Error(w, http.StatusBadRequest, "either text or file must be provided")
		return "", "", false, false
	}

	maxLen := maxExtractedTextLength
	if user, err := middleware.GetUserFromContext(r); err == nil && user.MaxFileSize > maxLen {
		maxLen = user.MaxFileSize
	}
	if err := fileproc.ValidateTextLength(text, maxLen); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return "", "", false, false
	}

	return text, source, uploaded, true
}

// clampMaxPoints plafonne max_points à la limite de l'utilisateur.
func (h *Handler) clampMaxPoints(r *http.Request, requested int) int {
	limit := gamification.DefaultLimits.MaxSummaryPoints
	if user, err := middleware.GetUserFromContext(r); err == nil {
		limit = user.MaxSummaryPoints
	}
	if requested > limit {
		return limit
	}
	return requested
}

// grantUploadBonus accorde le bonus d'upload quotidien si authentifié.
func (h *Handler) grantUploadBonus(r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		return
	}
	if granted, err := gamification.GrantFileUploadBonus(r.Context(), user.ID); err != nil {
		utils.LogError("file upload bonus failed for %s: %v", user.ID, err)
	} else if granted {
		utils.LogInfo("file upload bonus granted to %s", user.ID)
	}
}
