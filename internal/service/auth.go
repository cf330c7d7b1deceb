package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/tutorhub/tutor-server-go/internal/audit"
	"github.com/tutorhub/tutor-server-go/internal/config"
	"github.com/tutorhub/tutor-server-go/internal/database"
	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/model"
	"github.com/tutorhub/tutor-server-go/internal/repository"
	"github.com/tutorhub/tutor-server-go/internal/util"
)

// SessionResult is the token triple returned by registration, login and
// session renewal.
type SessionResult struct {
	SessionToken      string    `json:"session_token"`
	SessionExpiration time.Time `json:"session_expiration"`
	UpdateToken       string    `json:"update_token"`
}

type RegisterParams struct {
	Username string
	Name     string
	Bio      *string
	Price    *int
	Subjects []string
	Password string
}

type AuthService struct {
	db          txRunner
	userRepo    repository.UserRepository
	subjectRepo repository.SubjectRepository
}

// txRunner is the slice of database.DB the services need, kept as an
// interface so tests can run without a live database.
type txRunner interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

func NewAuthService(
	db txRunner,
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
) *AuthService {
	return &AuthService{
		db:          db,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
	}
}

// Register creates the account with its password digest, issues the initial
// session, and tags the requested subjects, all in one transaction.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	digest, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	sessionToken, updateToken, err := newTokenPair()
	if err != nil {
		return nil, err
	}

	notAvailable := false

	var user *model.User
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		users := s.userRepo.WithTx(tx)
		subjects := s.subjectRepo.WithTx(tx)

		existing, err := users.FindByUsername(ctx, params.Username)
		if err != nil {
			return apperrors.Database(err)
		}
		if existing != nil {
			return apperrors.AlreadyExists("User")
		}

		created, err := users.Create(ctx, model.CreateUserParams{
			Username:          params.Username,
			Name:              params.Name,
			Bio:               params.Bio,
			Price:             params.Price,
			IsAvailable:       &notAvailable,
			PasswordDigest:    digest,
			SessionToken:      sessionToken,
			SessionExpiration: time.Now().Add(config.SessionTTL),
			UpdateToken:       updateToken,
		})
		if err != nil {
			return classifyCreateError(err)
		}

		if err := tagSubjects(ctx, subjects, created.ID, params.Subjects); err != nil {
			return err
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(audit.Event{Type: audit.EventRegister, UserID: user.ID, Username: user.Username})
	log.Info().
		Int64("userId", user.ID).
		Str("username", user.Username).
		Time("sessionExpiration", user.SessionExpiration).
		Msg("user registered")

	return user, nil
}

// Login verifies the credentials and returns the current token triple.
// Logging in does not rotate the session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*SessionResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil || !util.CheckPasswordHash(password, user.PasswordDigest) {
		audit.Log(audit.Event{Type: audit.EventLoginFailure, Username: username})
		return nil, apperrors.InvalidCredentials()
	}

	audit.Log(audit.Event{Type: audit.EventLoginSuccess, UserID: user.ID, Username: user.Username})

	return sessionResult(user), nil
}

// RenewSession rotates the token triple for the account holding the given
// update token. The update token is single-use: renewing invalidates it
// together with the previous session token.
func (s *AuthService) RenewSession(ctx context.Context, updateToken string) (*SessionResult, error) {
	user, err := s.userRepo.FindByUpdateToken(ctx, updateToken)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		audit.Log(audit.Event{Type: audit.EventAuthFailure})
		return nil, apperrors.InvalidToken("Invalid update token")
	}

	sessionToken, newUpdateToken, err := newTokenPair()
	if err != nil {
		return nil, err
	}

	renewed, err := s.userRepo.UpdateSession(ctx, user.ID, model.UpdateSessionParams{
		SessionToken:      sessionToken,
		SessionExpiration: time.Now().Add(config.SessionTTL),
		UpdateToken:       newUpdateToken,
	})
	if err != nil {
		return nil, classifyCreateError(err)
	}
	if renewed == nil {
		return nil, apperrors.InvalidToken("Invalid update token")
	}

	audit.Log(audit.Event{Type: audit.EventSessionRenew, UserID: renewed.ID, Username: renewed.Username})

	return sessionResult(renewed), nil
}

// VerifySession resolves a session token to its account. A token that
// matches but has expired is invalid like any other unknown token.
func (s *AuthService) VerifySession(ctx context.Context, sessionToken string) (*model.User, error) {
	user, err := s.userRepo.FindBySessionToken(ctx, sessionToken)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil || !time.Now().Before(user.SessionExpiration) {
		audit.Log(audit.Event{Type: audit.EventAuthFailure})
		return nil, apperrors.InvalidToken("Invalid session token")
	}
	return user, nil
}

func sessionResult(user *model.User) *SessionResult {
	return &SessionResult{
		SessionToken:      user.SessionToken,
		SessionExpiration: user.SessionExpiration,
		UpdateToken:       user.UpdateToken,
	}
}

func newTokenPair() (sessionToken, updateToken string, err error) {
	if sessionToken, err = util.GenerateToken(); err != nil {
		return "", "", apperrors.Internal("Failed to generate token").WithCause(err)
	}
	if updateToken, err = util.GenerateToken(); err != nil {
		return "", "", apperrors.Internal("Failed to generate token").WithCause(err)
	}
	return sessionToken, updateToken, nil
}

// classifyCreateError distinguishes a username conflict from the
// theoretical collision on a freshly generated token column.
func classifyCreateError(err error) error {
	if repository.IsUniqueViolation(err) {
		if repository.ViolatedConstraint(err) == "users_username_key" {
			return apperrors.AlreadyExists("User")
		}
		return apperrors.TokenCollision(err)
	}
	return apperrors.Database(err)
}

// tagSubjects resolves each name to a subject row, creating missing ones,
// and overwrites the user's association set.
func tagSubjects(ctx context.Context, subjects repository.SubjectRepository, userID int64, names []string) error {
	ids := make([]int64, 0, len(names))
	seen := make(map[int64]bool)
	for _, name := range names {
		subject, err := subjects.Ensure(ctx, name)
		if err != nil {
			return apperrors.Database(err)
		}
		if subject == nil {
			return apperrors.Internal("Subject disappeared during ensure")
		}
		if !seen[subject.ID] {
			seen[subject.ID] = true
			ids = append(ids, subject.ID)
		}
	}

	if err := subjects.ReplaceForUser(ctx, userID, ids); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
