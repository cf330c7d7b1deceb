package model

import (
	"time"
)

// Transaction rows are immutable once created; they are only removed when
// either party's account is deleted.
type Transaction struct {
	ID         int64     `db:"id" json:"id"`
	Status     string    `db:"status" json:"status"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	CreatedAt  time.Time `db:"created_at" json:"-"`
}

type CreateTransactionParams struct {
	Status     string
	SenderID   int64
	ReceiverID int64
}
