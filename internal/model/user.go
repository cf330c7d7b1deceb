package model

import (
	"time"
)

type User struct {
	ID                int64      `db:"id" json:"id"`
	Username          string     `db:"username" json:"username"`
	Name              string     `db:"name" json:"name"`
	Bio               *string    `db:"bio" json:"bio"`
	Price             *int       `db:"price" json:"price"`
	IsAvailable       *bool      `db:"is_available" json:"isAvailable"`
	PasswordDigest    string     `db:"password_digest" json:"-"`
	SessionToken      string     `db:"session_token" json:"-"`
	SessionExpiration time.Time  `db:"session_expiration" json:"-"`
	UpdateToken       string     `db:"update_token" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"-"`
	UpdatedAt         time.Time  `db:"updated_at" json:"-"`
}

type CreateUserParams struct {
	Username          string
	Name              string
	Bio               *string
	Price             *int
	IsAvailable       *bool
	PasswordDigest    string
	SessionToken      string
	SessionExpiration time.Time
	UpdateToken       string
}

type UpdateProfileParams struct {
	Bio         *string
	Price       *int
	IsAvailable *bool
}

type UpdateSessionParams struct {
	SessionToken      string
	SessionExpiration time.Time
	UpdateToken       string
}
