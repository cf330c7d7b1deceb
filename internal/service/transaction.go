package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/model"
	"github.com/tutorhub/tutor-server-go/internal/repository"
)

type TransactionService struct {
	userRepo repository.UserRepository
	txnRepo  repository.TransactionRepository
}

func NewTransactionService(
	userRepo repository.UserRepository,
	txnRepo repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		userRepo: userRepo,
		txnRepo:  txnRepo,
	}
}

// Create records a transaction from sender to receiver. Transactions have
// no update path afterwards.
func (s *TransactionService) Create(ctx context.Context, senderID, receiverID int64, status string) (*model.Transaction, error) {
	receiver, err := s.userRepo.FindByID(ctx, receiverID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if receiver == nil {
		return nil, apperrors.NotFound("User")
	}

	txn, err := s.txnRepo.Create(ctx, model.CreateTransactionParams{
		Status:     status,
		SenderID:   senderID,
		ReceiverID: receiverID,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Int64("transactionId", txn.ID).
		Int64("senderId", senderID).
		Int64("receiverId", receiverID).
		Str("status", status).
		Msg("transaction recorded")

	return txn, nil
}

func (s *TransactionService) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if txn == nil {
		return nil, apperrors.NotFound("Transaction")
	}
	return txn, nil
}
