package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tutorhub/tutor-server-go/internal/model"
)

type SubjectRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Subject, error)
	FindByName(ctx context.Context, name string) (*model.Subject, error)
	FindAll(ctx context.Context) ([]model.Subject, error)
	// Ensure returns the subject with the given name, creating it first if
	// no such subject exists yet.
	Ensure(ctx context.Context, name string) (*model.Subject, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Subject, error)
	FindAvailableUsersBySubjectID(ctx context.Context, subjectID int64) ([]model.User, error)
	ReplaceForUser(ctx context.Context, userID int64, subjectIDs []int64) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SubjectRepository
}

type subjectRepo struct {
	db sqlxDB
}

func NewSubjectRepository(db *sqlx.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) WithTx(tx *sqlx.Tx) SubjectRepository {
	return &subjectRepo{db: tx}
}

func (r *subjectRepo) FindByID(ctx context.Context, id int64) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.GetContext(ctx, &subject, `
		SELECT * FROM subjects WHERE id = $1
	`, id)
	return HandleNotFound(&subject, err)
}

func (r *subjectRepo) FindByName(ctx context.Context, name string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.GetContext(ctx, &subject, `
		SELECT * FROM subjects WHERE name = $1
	`, name)
	return HandleNotFound(&subject, err)
}

func (r *subjectRepo) FindAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.SelectContext(ctx, &subjects, `
		SELECT * FROM subjects ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// Ensure inserts with ON CONFLICT DO NOTHING and re-reads, so a concurrent
// writer creating the same name is indistinguishable from the row having
// existed all along. A pre-check would race under the name's unique index.
func (r *subjectRepo) Ensure(ctx context.Context, name string) (*model.Subject, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subjects (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		return nil, err
	}
	return r.FindByName(ctx, name)
}

func (r *subjectRepo) FindByUserID(ctx context.Context, userID int64) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.SelectContext(ctx, &subjects, `
		SELECT s.* FROM subjects s
		JOIN user_subjects us ON us.subject_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.id
	`, userID)
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) FindAvailableUsersBySubjectID(ctx context.Context, subjectID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.* FROM users u
		JOIN user_subjects us ON us.user_id = u.id
		WHERE us.subject_id = $1 AND u.is_available = TRUE
		ORDER BY u.id
	`, subjectID)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ReplaceForUser overwrites the user's entire subject set.
func (r *subjectRepo) ReplaceForUser(ctx context.Context, userID int64, subjectIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM user_subjects WHERE user_id = $1
	`, userID); err != nil {
		return err
	}

	for _, subjectID := range subjectIDs {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO user_subjects (user_id, subject_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, subjectID); err != nil {
			return err
		}
	}
	return nil
}
