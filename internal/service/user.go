package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/tutorhub/tutor-server-go/internal/audit"
	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/model"
	"github.com/tutorhub/tutor-server-go/internal/repository"
)

type UpdateProfileParams struct {
	Bio         *string
	Price       *int
	IsAvailable *bool
	Subjects    []string
}

type UserService struct {
	db          txRunner
	userRepo    repository.UserRepository
	subjectRepo repository.SubjectRepository
	txnRepo     repository.TransactionRepository
}

func NewUserService(
	db txRunner,
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
	txnRepo repository.TransactionRepository,
) *UserService {
	return &UserService{
		db:          db,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		txnRepo:     txnRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*UserView, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return s.buildView(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		view, err := s.buildView(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// UpdateProfile mutates bio, price and availability and replaces the whole
// subject set. Username, name and password stay immutable after creation.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, params UpdateProfileParams) (*UserView, error) {
	var updated *model.User
	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		users := s.userRepo.WithTx(tx)
		subjects := s.subjectRepo.WithTx(tx)

		user, err := users.UpdateProfile(ctx, id, model.UpdateProfileParams{
			Bio:         params.Bio,
			Price:       params.Price,
			IsAvailable: params.IsAvailable,
		})
		if err != nil {
			return apperrors.Database(err)
		}
		if user == nil {
			return apperrors.NotFound("User")
		}

		if err := tagSubjects(ctx, subjects, user.ID, params.Subjects); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("userId", updated.ID).Msg("profile updated")

	return s.buildView(ctx, updated)
}

// Delete removes the user and, via the store's cascade, every transaction
// the user participates in. The pre-deletion serialization is returned.
func (s *UserService) Delete(ctx context.Context, id int64) (*UserView, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	view, err := s.buildView(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, apperrors.Database(err)
	}

	audit.Log(audit.Event{Type: audit.EventAccountDelete, UserID: user.ID, Username: user.Username})
	log.Info().Int64("userId", user.ID).Str("username", user.Username).Msg("user deleted")

	return view, nil
}

func (s *UserService) buildView(ctx context.Context, user *model.User) (*UserView, error) {
	subjects, err := s.subjectRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	txns, err := s.txnRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	return &UserView{
		ID:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		Bio:          user.Bio,
		Price:        user.Price,
		IsAvailable:  user.IsAvailable,
		Subjects:     subjectViews(subjects),
		Transactions: splitTransactions(user.ID, txns),
	}, nil
}
