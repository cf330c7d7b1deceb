package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhub/tutor-server-go/internal/database"
	"github.com/tutorhub/tutor-server-go/internal/middleware"
	"github.com/tutorhub/tutor-server-go/internal/model"
	"github.com/tutorhub/tutor-server-go/internal/repository"
	"github.com/tutorhub/tutor-server-go/internal/service"
)

// fakeStore is an in-memory stand-in for the relational store. It backs
// full-lifecycle handler tests without a database. Deleting a user cascades
// to its transactions the way the schema's foreign keys do.
type fakeStore struct {
	users         map[int64]*model.User
	subjects      map[int64]*model.Subject
	subjectByName map[string]int64
	userSubjects  map[int64]map[int64]bool
	txns          map[int64]*model.Transaction
	nextUserID    int64
	nextSubjectID int64
	nextTxnID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[int64]*model.User),
		subjects:      make(map[int64]*model.Subject),
		subjectByName: make(map[string]int64),
		userSubjects:  make(map[int64]map[int64]bool),
		txns:          make(map[int64]*model.Transaction),
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository { return r }

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if user, ok := r.store.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range r.store.users {
		if user.SessionToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUpdateToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range r.store.users {
		if user.UpdateToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	ids := make([]int64, 0, len(r.store.users))
	for id := range r.store.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *r.store.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	r.store.nextUserID++
	user := &model.User{
		ID:                r.store.nextUserID,
		Username:          params.Username,
		Name:              params.Name,
		Bio:               params.Bio,
		Price:             params.Price,
		IsAvailable:       params.IsAvailable,
		PasswordDigest:    params.PasswordDigest,
		SessionToken:      params.SessionToken,
		SessionExpiration: params.SessionExpiration,
		UpdateToken:       params.UpdateToken,
	}
	r.store.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, params model.UpdateProfileParams) (*model.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	user.Bio = params.Bio
	user.Price = params.Price
	user.IsAvailable = params.IsAvailable
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateSession(ctx context.Context, id int64, params model.UpdateSessionParams) (*model.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	user.SessionToken = params.SessionToken
	user.SessionExpiration = params.SessionExpiration
	user.UpdateToken = params.UpdateToken
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	delete(r.store.users, id)
	delete(r.store.userSubjects, id)
	for txnID, txn := range r.store.txns {
		if txn.SenderID == id || txn.ReceiverID == id {
			delete(r.store.txns, txnID)
		}
	}
	return nil
}

type fakeSubjectRepo struct{ store *fakeStore }

func (r *fakeSubjectRepo) WithTx(tx *sqlx.Tx) repository.SubjectRepository { return r }

func (r *fakeSubjectRepo) FindByID(ctx context.Context, id int64) (*model.Subject, error) {
	if subject, ok := r.store.subjects[id]; ok {
		copied := *subject
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSubjectRepo) FindByName(ctx context.Context, name string) (*model.Subject, error) {
	if id, ok := r.store.subjectByName[name]; ok {
		copied := *r.store.subjects[id]
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSubjectRepo) FindAll(ctx context.Context) ([]model.Subject, error) {
	ids := make([]int64, 0, len(r.store.subjects))
	for id := range r.store.subjects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	subjects := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		subjects = append(subjects, *r.store.subjects[id])
	}
	return subjects, nil
}

func (r *fakeSubjectRepo) Ensure(ctx context.Context, name string) (*model.Subject, error) {
	if id, ok := r.store.subjectByName[name]; ok {
		copied := *r.store.subjects[id]
		return &copied, nil
	}
	r.store.nextSubjectID++
	subject := &model.Subject{ID: r.store.nextSubjectID, Name: name}
	r.store.subjects[subject.ID] = subject
	r.store.subjectByName[name] = subject.ID
	copied := *subject
	return &copied, nil
}

func (r *fakeSubjectRepo) FindByUserID(ctx context.Context, userID int64) ([]model.Subject, error) {
	ids := make([]int64, 0)
	for id := range r.store.userSubjects[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	subjects := make([]model.Subject, 0, len(ids))
	for _, id := range ids {
		subjects = append(subjects, *r.store.subjects[id])
	}
	return subjects, nil
}

func (r *fakeSubjectRepo) FindAvailableUsersBySubjectID(ctx context.Context, subjectID int64) ([]model.User, error) {
	ids := make([]int64, 0)
	for userID, subjectIDs := range r.store.userSubjects {
		if subjectIDs[subjectID] {
			ids = append(ids, userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]model.User, 0)
	for _, id := range ids {
		user := r.store.users[id]
		if user.IsAvailable != nil && *user.IsAvailable {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeSubjectRepo) ReplaceForUser(ctx context.Context, userID int64, subjectIDs []int64) error {
	set := make(map[int64]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		set[id] = true
	}
	r.store.userSubjects[userID] = set
	return nil
}

type fakeTransactionRepo struct{ store *fakeStore }

func (r *fakeTransactionRepo) WithTx(tx *sqlx.Tx) repository.TransactionRepository { return r }

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if txn, ok := r.store.txns[id]; ok {
		copied := *txn
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) FindByUserID(ctx context.Context, userID int64) ([]model.Transaction, error) {
	ids := make([]int64, 0)
	for id, txn := range r.store.txns {
		if txn.SenderID == userID || txn.ReceiverID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	txns := make([]model.Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, *r.store.txns[id])
	}
	return txns, nil
}

func (r *fakeTransactionRepo) Create(ctx context.Context, params model.CreateTransactionParams) (*model.Transaction, error) {
	r.store.nextTxnID++
	txn := &model.Transaction{
		ID:         r.store.nextTxnID,
		Status:     params.Status,
		SenderID:   params.SenderID,
		ReceiverID: params.ReceiverID,
	}
	r.store.txns[txn.ID] = txn
	copied := *txn
	return &copied, nil
}

// newTestRouter wires the full API surface over a fakeStore, mirroring the
// wiring in cmd/server.
func newTestRouter(store *fakeStore) http.Handler {
	userRepo := &fakeUserRepo{store: store}
	subjectRepo := &fakeSubjectRepo{store: store}
	txnRepo := &fakeTransactionRepo{store: store}

	authService := service.NewAuthService(store, userRepo, subjectRepo)
	userService := service.NewUserService(store, userRepo, subjectRepo, txnRepo)
	subjectService := service.NewSubjectService(subjectRepo)
	txnService := service.NewTransactionService(userRepo, txnRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService, userService)
	subjectHandler := NewSubjectHandler(subjectService)
	txnHandler := NewTransactionHandler(txnService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/subjects", subjectHandler.Routes())
		authHandler.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Handler)
			r.Get("/secret/", authHandler.Secret)
			r.Mount("/transactions", txnHandler.Routes())
		})
	})
	return r
}
