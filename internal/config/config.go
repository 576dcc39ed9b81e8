// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Application environments accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// StructuredConfig is the top-level configuration container for the
// love-health backend. It aggregates all sub-configurations and is populated
// by merging values from a .env file, environment variables, command-line
// flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the runtime environment,
	// token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational database, Redis and the object store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and throttling settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Env selects error verbosity and log level: "development", "production"
	// or "test".
	// Env: APP_ENV
	Env string `env:"ENV"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// RememberTokenDuration is the lifetime of tokens issued for a login with
	// "remember" set.
	// Env: APP_REMEMBER_TOKEN_DURATION
	RememberTokenDuration time.Duration `env:"REMEMBER_TOKEN_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// IsProduction reports whether internal error details must be hidden from clients.
func (a App) IsProduction() bool {
	return a.Env == EnvProduction
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the token revocation store settings.
	Redis Redis `envPrefix:"REDIS_"`

	// Blob holds the object storage settings for uploaded files.
	Blob Blob `envPrefix:"BLOB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its scheme: "postgres://..." uses pgx,
	// "sqlite:<path>" uses go-sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// MaxIdleConns caps idle pooled connections.
	// Env: STORAGE_DB_MAX_IDLE_CONNS
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`

	// ConnMaxLifetime recycles pooled connections.
	// Env: STORAGE_DB_CONN_MAX_LIFETIME
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"`

	// AutoMigrate applies embedded migrations on startup.
	// Env: STORAGE_DB_AUTO_MIGRATE
	AutoMigrate bool `env:"AUTO_MIGRATE"`
}

// Redis holds connection settings of the token revocation store. An empty
// Address selects the in-process store.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Blob holds object storage settings. An empty Endpoint selects the local
// filesystem store rooted at LocalDir.
type Blob struct {
	// Env: STORAGE_BLOB_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: STORAGE_BLOB_ACCESS_KEY
	AccessKey string `env:"ACCESS_KEY"`
	// Env: STORAGE_BLOB_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
	// Env: STORAGE_BLOB_USE_SSL
	UseSSL bool `env:"USE_SSL"`

	// PublicBucket receives avatars and other world-readable files.
	// Env: STORAGE_BLOB_PUBLIC_BUCKET
	PublicBucket string `env:"PUBLIC_BUCKET"`

	// PrivateBucket receives files only the owner may read.
	// Env: STORAGE_BLOB_PRIVATE_BUCKET
	PrivateBucket string `env:"PRIVATE_BUCKET"`

	// PublicURL is the base URL objects are served from. Defaults to the
	// endpoint for minio and to /files for the local store.
	// Env: STORAGE_BLOB_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// LocalDir is the root directory of the filesystem store.
	// Env: STORAGE_BLOB_LOCAL_DIR
	LocalDir string `env:"LOCAL_DIR"`
}

// Server holds network, timeout and throttling settings for the HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSOrigins lists allowed origins; "*" allows any.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// LoginRate is the sustained number of login attempts per second allowed
	// for one client address.
	// Env: SERVER_LOGIN_RATE
	LoginRate float64 `env:"LOGIN_RATE"`

	// LoginBurst is the number of login attempts allowed at once.
	// Env: SERVER_LOGIN_BURST
	LoginBurst int `env:"LOGIN_BURST"`

	// MaxUploadSize caps multipart uploads, in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// LimiterCleanupInterval is how often idle login limiters are evicted.
	// Env: WORKERS_LIMITER_CLEANUP_INTERVAL
	LimiterCleanupInterval time.Duration `env:"LIMITER_CLEANUP_INTERVAL"`

	// LimiterIdleTTL is how long a limiter may stay unused before eviction.
	// Env: WORKERS_LIMITER_IDLE_TTL
	LimiterIdleTTL time.Duration `env:"LIMITER_IDLE_TTL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. For every field the first source that sets it wins:
//  1. Environment variables (a .env file in the working directory is loaded
//     into the environment first, without overriding existing variables)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
