package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/llm"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

type MCQRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

type MCQResponse struct {
	ID        string             `json:"id"`
	Topic     string             `json:"topic"`
	Questions []model.MCQuestion `json:"questions"`
	Timestamp time.Time          `json:"timestamp"`
}

type MCQAdvancedRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
}

type MCQAdvancedResponse struct {
	ID           string             `json:"id"`
	SourceLength int                `json:"source_length"`
	Questions    []model.MCQuestion `json:"questions"`
	Difficulty   string             `json:"difficulty"`
	QuestionType string             `json:"question_type"`
	Timestamp    time.Time          `json:"timestamp"`
	Source       string             `json:"source"`
}

// MCQ génère un QCM sur un sujet libre (v1).
func (h *Handler) MCQ(w http.ResponseWriter, r *http.Request) {
	var req MCQRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		utils.Error(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	req.NumQuestions = h.clampNumQuestions(r, req.NumQuestions)

	prompt := llm.BuildMCQTopicPrompt(req.Topic, req.NumQuestions)
	response, err := h.llm.Call(r.Context(), prompt, llm.Options{Temperature: 0.5, MaxTokens: 2500})
	if err != nil {
		h.llmError(w, err)
		return
	}

	questions, err := llm.ParseMCQ(response, req.NumQuestions)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "failed to generate valid questions, please try again")
		return
	}

	h.logActivity(r, gamification.ActivityMCQ, map[string]interface{}{"topic": req.Topic, "num_questions": len(questions)})

	utils.Success(w, MCQResponse{
		ID:        uuid.New().String(),
		Topic:     req.Topic,
		Questions: questions,
		Timestamp: time.Now().UTC(),
	})
}

// MCQAdvanced génère un QCM depuis un texte ou un fichier uploadé (v2).
func (h *Handler) MCQAdvanced(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	text, source, uploaded, ok := h.textFromForm(w, r)
	if !ok {
		return
	}

	numQuestions := 5
	if v := r.FormValue("num_questions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Error(w, http.StatusBadRequest, "num_questions must be a positive integer")
			return
		}
		numQuestions = n
	}
	difficulty := r.FormValue("difficulty")
	if difficulty == "" {
		difficulty = "medium"
	}
	questionType := r.FormValue("question_type")
	if questionType == "" {
		questionType = "mixed"
	}

	resp, ok := h.generateMCQAdvanced(w, r, text, source, numQuestions, difficulty, questionType)
	if !ok {
		return
	}
	if uploaded {
		h.grantUploadBonus(r)
	}
	utils.Success(w, resp)
}

// MCQText est la variante JSON du QCM avancé (v2).
func (h *Handler) MCQText(w http.ResponseWriter, r *http.Request) {
	var req MCQAdvancedRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		utils.Error(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.QuestionType == "" {
		req.QuestionType = "mixed"
	}

	resp, ok := h.generateMCQAdvanced(w, r, req.Text, "text", req.NumQuestions, req.Difficulty, req.QuestionType)
	if !ok {
		return
	}
	utils.Success(w, resp)
}

// generateMCQAdvanced valide les options, appelle le modèle et décode
// les questions. Répond lui-même en cas d'erreur.
func (h *Handler) generateMCQAdvanced(w http.ResponseWriter, r *http.Request, text, source string, numQuestions int, difficulty, questionType string) (*MCQAdvancedResponse, bool) {
	if !llm.ValidDifficulty(difficulty) {
		utils.Error(w, http.StatusBadRequest, "difficulty must be one of: easy, medium, hard")
		return nil, false
	}
	if !llm.ValidQuestionType(questionType) {
		utils.Error(w, http.StatusBadRequest, "question_type must be one of: factual, conceptual, application, mixed")
		return nil, false
	}
	numQuestions = h.clampNumQuestions(r, numQuestions)

	// Le texte source est tronqué pour la génération de QCM
	if len(text) > 5000 {
		text = text[:5000]
		utils.LogInfo("text truncated to 5000 chars for MCQ generation")
	}

	prompt := llm.BuildMCQTextPrompt(text, numQuestions, difficulty, questionType)
	response, err := h.llm.Call(r.Context(), prompt, llm.Options{Temperature: 0.6, MaxTokens: 3000})
	if err != nil {
		h.llmError(w, err)
		return nil, false
	}

	questions, err := llm.ParseMCQ(response, numQuestions)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "failed to generate valid questions, please try again")
		return nil, false
	}

	h.logActivity(r, gamification.ActivityMCQ, map[string]interface{}{
		"difficulty":    difficulty,
		"question_type": questionType,
		"num_questions": len(questions),
		"source":        source,
	})

	return &MCQAdvancedResponse{
		ID:           uuid.New().String(),
		SourceLength: len(text),
		Questions:    questions,
		Difficulty:   difficulty,
		QuestionType: questionType,
		Timestamp:    time.Now().UTC(),
		Source:       source,
	}, true
}

// clampNumQuestions plafonne num_questions à la limite de l'utilisateur.
func (h *Handler) clampNumQuestions(r *http.Request, requested int) int {
	limit := gamification.DefaultLimits.MaxMCQQuestions
	if user, err := middleware.GetUserFromContext(r); err == nil {
		limit = user.MaxMCQQuestions
	}
	if requested > limit {
		return limit
	}
	return requested
}
