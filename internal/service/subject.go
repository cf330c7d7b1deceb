package service

import (
	"context"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/model"
	"github.com/tutorhub/tutor-server-go/internal/repository"
)

type SubjectService struct {
	subjectRepo repository.SubjectRepository
}

func NewSubjectService(subjectRepo repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.subjectRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

// ListAvailableTutors returns the subject's members whose availability flag
// is set.
func (s *SubjectService) ListAvailableTutors(ctx context.Context, subjectID int64) ([]UserSubView, error) {
	subject, err := s.subjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if subject == nil {
		return nil, apperrors.NotFound("Subject")
	}

	users, err := s.subjectRepo.FindAvailableUsersBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	views := make([]UserSubView, 0, len(users))
	for _, user := range users {
		views = append(views, userSubView(user))
	}
	return views, nil
}
