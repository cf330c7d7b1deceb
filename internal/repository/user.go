package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tutorhub/tutor-server-go/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindBySessionToken(ctx context.Context, token string) (*model.User, error)
	FindByUpdateToken(ctx context.Context, token string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, params model.UpdateProfileParams) (*model.User, error)
	UpdateSession(ctx context.Context, id int64, params model.UpdateSessionParams) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) UserRepository
}

// sqlxDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type sqlxDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type userRepo struct {
	db sqlxDB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx *sqlx.Tx) UserRepository {
	return &userRepo{db: tx}
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE id = $1
	`, id)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE username = $1
	`, username)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE session_token = $1
	`, token)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByUpdateToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE update_token = $1
	`, token)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users (
			username, name, bio, price, is_available, password_digest,
			session_token, session_expiration, update_token
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	`, params.Username, params.Name, params.Bio, params.Price, params.IsAvailable,
		params.PasswordDigest, params.SessionToken, params.SessionExpiration, params.UpdateToken)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id int64, params model.UpdateProfileParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET
			bio = $2,
			price = $3,
			is_available = $4,
			updated_at = $5
		WHERE id = $1
		RETURNING *
	`, id, params.Bio, params.Price, params.IsAvailable, time.Now())
	return HandleNotFound(&user, err)
}

// UpdateSession overwrites the whole token triple in one statement, so a
// renewal is atomic: the previous session and update tokens stop matching
// the moment the new ones are visible.
func (r *userRepo) UpdateSession(ctx context.Context, id int64, params model.UpdateSessionParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET
			session_token = $2,
			session_expiration = $3,
			update_token = $4,
			updated_at = $5
		WHERE id = $1
		RETURNING *
	`, id, params.SessionToken, params.SessionExpiration, params.UpdateToken, time.Now())
	return HandleNotFound(&user, err)
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
