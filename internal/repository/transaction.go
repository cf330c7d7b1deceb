package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tutorhub/tutor-server-go/internal/model"
)

type TransactionRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Transaction, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Transaction, error)
	Create(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) TransactionRepository
}

type transactionRepo struct {
	db sqlxDB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) WithTx(tx *sqlx.Tx) TransactionRepository {
	return &transactionRepo{db: tx}
}

func (r *transactionRepo) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `
		SELECT * FROM transactions WHERE id = $1
	`, id)
	return HandleNotFound(&txn, err)
}

// FindByUserID returns every transaction the user participates in, as
// sender or receiver.
func (r *transactionRepo) FindByUserID(ctx context.Context, userID int64) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := r.db.SelectContext(ctx, &txns, `
		SELECT * FROM transactions
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepo) Create(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.GetContext(ctx, &txn, `
		INSERT INTO transactions (status, sender_id, receiver_id)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Status, params.SenderID, params.ReceiverID)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
