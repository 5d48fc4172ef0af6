// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-backend/internal/adapters/http"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/breaker"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/postgres"
	"github.com/jsamuelsen11/todo-backend/internal/adapters/storage/rediscache"
	"github.com/jsamuelsen11/todo-backend/internal/app"
	"github.com/jsamuelsen11/todo-backend/internal/app/validate"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/platform/health"
	"github.com/jsamuelsen11/todo-backend/internal/platform/logging"
	"github.com/jsamuelsen11/todo-backend/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-backend/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// Run embedded migrations before the pool is handed out.
	if cfg.Database.Driver == "postgres" && cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registerHealthCheckers(injector, cfg)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Release the connection pool after in-flight requests have drained.
	if repo, err := do.Invoke[*postgres.Repository](injector); err == nil && repo != nil {
		repo.Close()
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Validation pipeline.
	do.Provide(injector, func(_ do.Injector) (*validate.InputSanitizer, error) {
		return validate.NewInputSanitizer(logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*validate.UUIDValidator, error) {
		return validate.NewUUIDValidator(logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*validate.FieldValidator, error) {
		sanitizer := do.MustInvoke[*validate.InputSanitizer](i)
		return validate.NewFieldValidator(sanitizer, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.EntryBuilder, error) {
		uuidValidator := do.MustInvoke[*validate.UUIDValidator](i)
		fieldValidator := do.MustInvoke[*validate.FieldValidator](i)
		return app.NewEntryBuilder(uuidValidator, fieldValidator), nil
	})

	// Storage. The postgres repository is registered separately so the pool
	// can be closed on shutdown and its health check registered by name.
	do.Provide(injector, func(_ do.Injector) (*postgres.Repository, error) {
		if cfg.Database.Driver != "postgres" {
			return nil, nil
		}
		pool, err := postgres.NewPool(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("creating connection pool: %w", err)
		}
		return postgres.NewRepository(pool), nil
	})

	do.Provide(injector, func(_ do.Injector) (*redis.Client, error) {
		if !cfg.Cache.Enabled {
			return nil, nil
		}
		return redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*rediscache.Repository, error) {
		if !cfg.Cache.Enabled {
			return nil, nil
		}
		inner := do.MustInvoke[ports.TodoRepository](i)
		rdb := do.MustInvoke[*redis.Client](i)
		return rediscache.New(inner, rdb, cfg.Cache.TTL, logger), nil
	})

	// The repository port resolves to the decorated base store: breaker over
	// postgres or memory. The redis cache wraps this port separately so its
	// health check stays addressable.
	do.Provide(injector, func(i do.Injector) (ports.TodoRepository, error) {
		var repo ports.TodoRepository
		if cfg.Database.Driver == "postgres" {
			repo = do.MustInvoke[*postgres.Repository](i)
		} else {
			repo = memory.New()
		}

		if cfg.Breaker.Enabled {
			repo = breaker.New(repo, cfg.Breaker, logger)
		}
		return repo, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		repo := do.MustInvoke[ports.TodoRepository](i)
		if cfg.Cache.Enabled {
			repo = do.MustInvoke[*rediscache.Repository](i)
		}

		builder := do.MustInvoke[*app.EntryBuilder](i)
		uuidValidator := do.MustInvoke[*validate.UUIDValidator](i)
		fieldValidator := do.MustInvoke[*validate.FieldValidator](i)
		return app.NewTodoService(repo, builder, uuidValidator, fieldValidator, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		svc := do.MustInvoke[ports.TodoService](i)
		return handlers.NewTodoHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(todoH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthCheckers registers readiness checks for the wired storage
// backends. The memory store needs none.
func registerHealthCheckers(injector *do.RootScope, cfg *config.Config) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)

	if cfg.Database.Driver == "postgres" {
		if repo := do.MustInvoke[*postgres.Repository](injector); repo != nil {
			registry.Register(repo)
		}
	}
	if cfg.Cache.Enabled {
		if cache := do.MustInvoke[*rediscache.Repository](injector); cache != nil {
			registry.Register(cache)
		}
	}
}
