package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"attestry/internal/attestation/handler"
	attmetrics "attestry/internal/attestation/metrics"
	"attestry/internal/attestation/registry"
	"attestry/internal/attestation/service"
	"attestry/internal/attestation/store"
	jwttoken "attestry/internal/jwt_token"
	"attestry/internal/platform/config"
	"attestry/internal/platform/health"
	"attestry/internal/platform/httpserver"
	"attestry/internal/platform/logger"
	"attestry/internal/schema"
	httptransport "attestry/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing attestry",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
	)

	metrics := attmetrics.New()
	reg := registry.New()

	factory := func(name string, sch *schema.Schema) (*service.Instance, error) {
		opts := []service.Option{
			service.WithLogger(log),
			service.WithMetrics(metrics),
			service.WithDependencyResolver(reg),
		}
		if cfg.MaxVerifyDepth > 0 {
			opts = append(opts, service.WithMaxVerifyDepth(cfg.MaxVerifyDepth))
		}
		if cfg.DefaultTTL > 0 {
			opts = append(opts, service.WithDefaultTTL(cfg.DefaultTTL))
		}
		return service.New(name, sch, store.NewInMemory(), opts...)
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	h := handler.New(reg, factory, log)
	router := httptransport.NewRouter(h, health.New(), &tokenValidator{tokens: tokens}, log)

	apiSrv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down servers gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
