package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Register)
	r.Get("/", h.List)
	r.Get("/{userID}/", h.GetByID)
	r.Post("/{userID}/", h.UpdateProfile)
	r.Delete("/{userID}/", h.Delete)

	return r
}

type registerRequest struct {
	Username *string  `json:"username"`
	Name     *string  `json:"name"`
	Bio      *string  `json:"bio"`
	Price    *int     `json:"price"`
	Subjects []string `json:"subjects"`
	Password *string  `json:"password"`
}

type registerResponse struct {
	service.SessionResult
	User *service.UserView `json:"user"`
}

// POST /api/users/
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.MissingField("user info input missing"))
		return
	}
	if req.Username == nil || req.Name == nil || req.Bio == nil ||
		req.Price == nil || req.Subjects == nil || req.Password == nil {
		writeError(w, apperrors.MissingField("user info input missing"))
		return
	}
	if *req.Username == "" {
		writeError(w, apperrors.MissingField("Username cannot be empty!"))
		return
	}
	if *req.Password == "" {
		writeError(w, apperrors.MissingField("password cannot be empty!"))
		return
	}
	if *req.Price < 0 {
		writeError(w, apperrors.InvalidInput("price", "must be non-negative"))
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterParams{
		Username: *req.Username,
		Name:     *req.Name,
		Bio:      req.Bio,
		Price:    req.Price,
		Subjects: req.Subjects,
		Password: *req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.userService.GetByID(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Int64("userId", user.ID).Msg("failed to serialize new user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		SessionResult: service.SessionResult{
			SessionToken:      user.SessionToken,
			SessionExpiration: user.SessionExpiration,
			UpdateToken:       user.UpdateToken,
		},
		User: view,
	})
}

// GET /api/users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// GET /api/users/{userID}/
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, apperrors.NotFound("User"))
		return
	}

	view, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type updateProfileRequest struct {
	Bio         *string  `json:"bio"`
	Price       *int     `json:"price"`
	Subjects    []string `json:"subject"`
	IsAvailable bool     `json:"isAvailable"`
}

// POST /api/users/{userID}/
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, apperrors.NotFound("User"))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.MissingField("user info input missing"))
		return
	}
	if req.Bio == nil || req.Price == nil || req.Subjects == nil {
		writeError(w, apperrors.MissingField("user info input missing"))
		return
	}
	if *req.Price < 0 {
		writeError(w, apperrors.InvalidInput("price", "must be non-negative"))
		return
	}

	view, err := h.userService.UpdateProfile(r.Context(), id, service.UpdateProfileParams{
		Bio:         req.Bio,
		Price:       req.Price,
		IsAvailable: &req.IsAvailable,
		Subjects:    req.Subjects,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// DELETE /api/users/{userID}/
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "userID"))
	if !ok {
		writeError(w, apperrors.NotFound("User"))
		return
	}

	view, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
