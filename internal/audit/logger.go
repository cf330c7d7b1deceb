package audit

import (
	"time"

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventRegister      EventType = "register"
	EventLoginSuccess  EventType = "login_success"
	EventLoginFailure  EventType = "login_failure"
	EventSessionRenew  EventType = "session_renew"
	EventAuthFailure   EventType = "auth_failure"
	EventAccountDelete EventType = "account_delete"
)

type Event struct {
	Type     EventType
	UserID   int64
	Username string
}

func Log(event Event) {
	logger := log.With().
		Str("audit", "security").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.UserID != 0 {
		logger = logger.With().Int64("user_id", event.UserID).Logger()
	}
	if event.Username != "" {
		logger = logger.With().Str("username", event.Username).Logger()
	}

	logger.Info().Msg("security event")
}
