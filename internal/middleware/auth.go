package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/msrishav-28/eduflow-dev/internal/auth"
	"github.com/msrishav-28/eduflow-dev/internal/database"
	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/scanner"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// Context keys
type contextKey string

const userContextKey = contextKey("user")

// Auth regroupe les middlewares d'authentification JWT.
type Auth struct {
	secret string
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: secret}
}

// Require valide le token et injecte l'utilisateur dans le contexte.
// Rejette la requête si le token est absent ou invalide.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Déjà chargé par Optional en amont
		if _, err := GetUserFromContext(r); err == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			utils.Error(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := a.userFromToken(r.Context(), token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional injecte l'utilisateur si un token valide est présent.
// Une requête sans token passe en anonyme, un token malformé est rejeté.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.userFromToken(r.Context(), token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extrait le token du header Authorization.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

// userFromToken valide le token et recharge l'utilisateur depuis la base.
func (a *Auth) userFromToken(ctx context.Context, token string) (*model.UserProfile, error) {
	userID, err := auth.Parse(token, a.secret)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + scanner.UserColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanner.ScanUserProfile(database.DB.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetUserIDFromContext récupère l'ID de l'utilisateur depuis le contexte (helper)
func GetUserIDFromContext(r *http.Request) (string, error) {
	user, err := GetUserFromContext(r)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// RequireAuth est un helper pour vérifier qu'un utilisateur est authentifié dans un handler
func RequireAuth(r *http.Request) (model.UserProfile, error) {
	return GetUserFromContext(r)
}
