package handler

import (
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/msrishav-28/eduflow-dev/internal/auth"
	"github.com/msrishav-28/eduflow-dev/internal/database"
	"github.com/msrishav-28/eduflow-dev/internal/gamification"
	"github.com/msrishav-28/eduflow-dev/internal/middleware"
	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/scanner"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup crée un compte et retourne directement un token d'accès.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		req.DisplayName = strings.Split(req.Email, "@")[0]
	}

	ctx := r.Context()

	// Unicité de l'email parmi les comptes actifs
	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1 AND deleted_at IS NULL)`,
		req.Email,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check email: "+err.Error())
		return
	}
	if exists {
		utils.Error(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	limits := gamification.DefaultLimits
	user, err := scanner.ScanUserProfile(database.DB.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name, max_file_size, max_mcq_questions, max_summary_points)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+scanner.UserColumns,
		req.Email, string(hash), strings.TrimSpace(req.DisplayName),
		limits.MaxFileSize, limits.MaxMCQQuestions, limits.MaxSummaryPoints,
	))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	token, err := auth.Sign(user.ID, h.cfg.JWTSecret)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not sign token")
		return
	}

	withDerived(user)
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}})
}

// Login vérifie les identifiants, accorde le bonus de connexion
// quotidien et retourne un token d'accès.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx := r.Context()

	var userID, hashedPassword string
	err := database.DB.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1 AND deleted_at IS NULL`,
		req.Email,
	).Scan(&userID, &hashedPassword)
	if err != nil {
		if err != pgx.ErrNoRows {
			utils.LogError("login lookup failed: %v", err)
		}
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Bonus de connexion quotidienne, au plus une fois par jour UTC
	if granted, err := gamification.GrantDailyLoginBonus(ctx, userID); err != nil {
		utils.LogError("daily login bonus failed for %s: %v", userID, err)
	} else if granted {
		utils.LogInfo("daily login bonus granted to %s", userID)
	}

	user, err := scanner.ScanUserProfile(database.DB.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users WHERE id=$1 AND deleted_at IS NULL`,
		userID,
	))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load user: "+err.Error())
		return
	}

	token, err := auth.Sign(user.ID, h.cfg.JWTSecret)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not sign token")
		return
	}

	withDerived(user)
	utils.Success(w, model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me retourne le profil de l'utilisateur authentifié.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	withDerived(&user)
	utils.Success(w, user)
}

// withDerived remplit les champs dérivés des points.
func withDerived(user *model.UserProfile) {
	level := gamification.LevelForPoints(user.Points)
	user.Level = level.Number
	user.LevelName = level.Name
}
