package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout
const DBPingTimeout = 5 * time.Second

// Session lifecycle
const (
	// SessionTTL is how long a session token stays valid after issuance.
	SessionTTL = 24 * time.Hour
	// BcryptCost is the work factor for password digests.
	BcryptCost = 13
)
