package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	MetricsAddr    string
	JWTSigningKey  string
	JWTIssuer      string
	TokenTTL       time.Duration
	MaxVerifyDepth int
	DefaultTTL     time.Duration
}

var TokenTTL = 15 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ATTESTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("ATTESTRY_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	tokenTTLStr := os.Getenv("ATTESTRY_TOKEN_TTL")
	if tokenTTLStr != "" {
		if duration, err := time.ParseDuration(tokenTTLStr); err == nil {
			TokenTTL = duration
		}
	}

	jwtSigningKey := os.Getenv("ATTESTRY_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}
	jwtIssuer := os.Getenv("ATTESTRY_JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "attestry"
	}

	maxDepth := 0
	if s := os.Getenv("ATTESTRY_MAX_VERIFY_DEPTH"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			maxDepth = v
		}
	}

	var defaultTTL time.Duration
	if s := os.Getenv("ATTESTRY_DEFAULT_TTL"); s != "" {
		if duration, err := time.ParseDuration(s); err == nil && duration > 0 {
			defaultTTL = duration
		}
	}

	return Server{
		Addr:           addr,
		MetricsAddr:    metricsAddr,
		JWTSigningKey:  jwtSigningKey,
		JWTIssuer:      jwtIssuer,
		TokenTTL:       TokenTTL,
		MaxVerifyDepth: maxDepth,
		DefaultTTL:     defaultTTL,
	}
}
