package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/service"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

func (h *SubjectHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{subjectID}/users/", h.ListAvailableTutors)

	return r
}

// GET /api/subjects/
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

// GET /api/subjects/{subjectID}/users/
func (h *SubjectHandler) ListAvailableTutors(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "subjectID"))
	if !ok {
		writeError(w, apperrors.NotFound("Subject"))
		return
	}

	tutors, err := h.subjectService.ListAvailableTutors(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tutors)
}
