// Package main runs the storefront HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/scentshop/internal/app"
	"github.com/abgdnv/scentshop/internal/config"
	"github.com/abgdnv/scentshop/pkg/bootstrap"
	"github.com/abgdnv/scentshop/pkg/config/configloader"
	"github.com/abgdnv/scentshop/pkg/messaging"
	"github.com/abgdnv/scentshop/pkg/nats"
	"github.com/abgdnv/scentshop/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

const serviceName = "storefront"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads configuration, wires the storefront and runs the HTTP server, the cart sweeper and, if enabled, pprof.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level, os.Stdout)
	slog.SetDefault(logger)

	meterProvider, err := telemetry.NewMeterProvider(serviceName)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	// gracefully shutdown meter provider
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := cfg.Shutdown.Context()
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
		return nil
	})

	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
		if err != nil {
			logger.Error("error creating tracer provider", slog.Any("error", err))
			return err
		}
		// gracefully shutdown tracer provider
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down tracer provider")
			shutdownCtx, cancel := cfg.Shutdown.Context()
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shutdown tracer provider: %w", err)
			}
			return nil
		})
	} else {
		logger.Info("Trace export is disabled")
	}

	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if cfg.Nats.Enabled {
		natsConn, err := nats.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
		if err != nil {
			return fmt.Errorf("failed to create NATS connection: %w", err)
		}
		js, err := nats.NewJetStreamContext(natsConn)
		if err != nil {
			return fmt.Errorf("failed to get JetStream context: %w", err)
		}
		if err := nats.EnsureStream(ctx, js, cfg.Nats.Stream, messaging.OrdersSubjects); err != nil {
			natsConn.Close()
			return err
		}
		publisher = nats.NewNatsPublisher(js)
		// drain NATS connection on shutdown
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Draining NATS connection")
			if err := natsConn.Drain(); err != nil {
				return fmt.Errorf("failed to drain NATS connection: %w", err)
			}
			return nil
		})
	} else {
		logger.Info("Order event publishing is disabled")
	}

	deps := app.SetupDependencies(app.NewOrderSink(cfg, logger), publisher, cfg, logger)
	httpServer := app.SetupHttpServer(deps, cfg)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := cfg.Shutdown.Context()
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Evict idle carts
	g.Go(func() error {
		return deps.Carts.Run(gCtx, cfg.Cart.SweepInterval)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		pprofServer := &http.Server{
			Addr: cfg.PProf.Addr,
		}
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := cfg.Shutdown.Context()
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
