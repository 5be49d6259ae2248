package config

import "time"

// Mongo connection pool settings
const (
	MongoMaxPoolSize = 50
	MongoMinPoolSize = 10
)

// HTTP server timeouts. Headers get a tight deadline; the body does not,
// because a video upload over a slow link can legitimately take minutes to
// stream. The per-request timeout is the bound on upload plus analysis.
const (
	ServerRequestTimeout    = 10 * time.Minute
	ServerReadHeaderTimeout = 10 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerShutdownTimeout   = 30 * time.Second
)

// Database ping timeout at startup
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 1 * time.Hour

// Bearer token lifetime
const AccessTokenTTL = 30 * time.Minute

// Uploaded video size ceiling for multipart requests
const MaxUploadSize = 64 << 20 // 64MB

// Interview question count bounds
const (
	MinQuestions = 1
	MaxQuestions = 10
)
