package service

import (
	"github.com/tutorhub/tutor-server-go/internal/model"
)

// SubjectView is the compact subject shape embedded in user views.
type SubjectView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TransactionsView splits a user's transactions by direction.
type TransactionsView struct {
	Send    []model.Transaction `json:"send"`
	Receive []model.Transaction `json:"receive"`
}

// UserView is the full serialization of a user, including subject tags and
// transactions.
type UserView struct {
	ID           int64            `json:"id"`
	Username     string           `json:"username"`
	Name         string           `json:"name"`
	Bio          *string          `json:"bio"`
	Price        *int             `json:"price"`
	IsAvailable  *bool            `json:"isAvailable"`
	Subjects     []SubjectView    `json:"subject"`
	Transactions TransactionsView `json:"transactions"`
}

// UserSubView is the compact user shape embedded in subject views.
type UserSubView struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	Bio         *string `json:"bio"`
	Price       *int    `json:"price"`
	IsAvailable *bool   `json:"isAvailable"`
}

func subjectViews(subjects []model.Subject) []SubjectView {
	views := make([]SubjectView, len(subjects))
	for i, s := range subjects {
		views[i] = SubjectView{ID: s.ID, Name: s.Name}
	}
	return views
}

func userSubView(user model.User) UserSubView {
	return UserSubView{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Bio:         user.Bio,
		Price:       user.Price,
		IsAvailable: user.IsAvailable,
	}
}

func splitTransactions(userID int64, txns []model.Transaction) TransactionsView {
	view := TransactionsView{
		Send:    []model.Transaction{},
		Receive: []model.Transaction{},
	}
	for _, t := range txns {
		if t.SenderID == userID {
			view.Send = append(view.Send, t)
		} else {
			view.Receive = append(view.Receive, t)
		}
	}
	return view
}
