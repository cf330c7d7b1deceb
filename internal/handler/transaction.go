package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/tutorhub/tutor-server-go/internal/errors"
	"github.com/tutorhub/tutor-server-go/internal/middleware"
	"github.com/tutorhub/tutor-server-go/internal/service"
)

type TransactionHandler struct {
	txnService *service.TransactionService
}

func NewTransactionHandler(txnService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

func (h *TransactionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{transactionID}/", h.GetByID)

	return r
}

type createTransactionRequest struct {
	ReceiverID *int64  `json:"receiver_id"`
	Status     *string `json:"status"`
}

// POST /api/transactions/ (behind the auth middleware; the authenticated
// user is the sender)
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sender := middleware.GetUser(r.Context())
	if sender == nil {
		writeError(w, apperrors.InvalidToken("Invalid session token"))
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReceiverID == nil || req.Status == nil {
		writeError(w, apperrors.MissingField("transaction info input missing"))
		return
	}

	txn, err := h.txnService.Create(r.Context(), sender.ID, *req.ReceiverID, *req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

// GET /api/transactions/{transactionID}/
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "transactionID"))
	if !ok {
		writeError(w, apperrors.NotFound("Transaction"))
		return
	}

	txn, err := h.txnService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}
