package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/middleware"
	"github.com/tutorhub/tutor-server-go/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Routes are registered directly on the /api router in main so that
// /login/ and /session/ stay siblings of the mounted subtrees.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/login/", h.Login)
	r.Post("/session/", h.RenewSession)
}

// POST /api/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == nil || req.Password == nil {
		writeError(w, apperrors.MissingField("Invalid username or password!"))
		return
	}

	result, err := h.authService.Login(r.Context(), *req.Username, *req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /api/session/
func (h *AuthHandler) RenewSession(w http.ResponseWriter, r *http.Request) {
	updateToken, ok := middleware.ExtractBearerToken(r)
	if !ok {
		writeError(w, apperrors.InvalidToken("Missing authorization header"))
		return
	}

	result, err := h.authService.RenewSession(r.Context(), updateToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GET /api/secret/ (behind the auth middleware)
func (h *AuthHandler) Secret(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeError(w, apperrors.InvalidToken("Invalid session token"))
		return
	}

	log.Debug().Int64("userId", user.ID).Msg("secret endpoint hit")
	writeJSON(w, http.StatusOK, "Hello World")
}
