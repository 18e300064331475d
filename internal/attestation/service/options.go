package service

import (
	"log/slog"
	"time"

	attmetrics "attestry/internal/attestation/metrics"
)

type Option func(i *Instance)

func WithLogger(logger *slog.Logger) Option {
	return func(i *Instance) {
		i.logger = logger
	}
}

func WithMetrics(m *attmetrics.Metrics) Option {
	return func(i *Instance) {
		i.metrics = m
	}
}

func WithEmitter(e EventEmitter) Option {
	return func(i *Instance) {
		i.emitter = e
	}
}

func WithAuthorizer(a Authorizer) Option {
	return func(i *Instance) {
		i.authz = a
	}
}

// WithDependencyResolver enables composite attestations: dependencies are
// resolved to Verifier capabilities through r at verification time.
func WithDependencyResolver(r DependencyResolver) Option {
	return func(i *Instance) {
		i.deps = r
	}
}

// WithClock replaces the time source. Tests use this to pin expiry behavior.
func WithClock(now func() time.Time) Option {
	return func(i *Instance) {
		i.clock = now
	}
}

// WithMaxVerifyDepth bounds the composite verification call tree.
func WithMaxVerifyDepth(depth int) Option {
	return func(i *Instance) {
		if depth > 0 {
			i.maxDepth = depth
		}
	}
}

// WithDefaultTTL applies an expiry to creations that do not set one.
// Zero keeps records valid forever unless the request says otherwise.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(i *Instance) {
		i.defaultTTL = ttl
	}
}
