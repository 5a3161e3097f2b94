package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jt828/flowtrace/pkg/flow"
	"github.com/jt828/flowtrace/pkg/flowtracing"
	"github.com/jt828/flowtrace/pkg/observability"
	"github.com/jt828/flowtrace/pkg/observability/implementation"
	"github.com/jt828/flowtrace/pkg/retry"
	retryImpl "github.com/jt828/flowtrace/pkg/retry/implementation"
	tracingImpl "github.com/jt828/flowtrace/pkg/tracing/implementation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := implementation.Config{
		ServiceName:  envOr("SERVICE_NAME", "flowtrace"),
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}
	obs, err := implementation.NewObservability(cfg)
	if err != nil {
		panic(err)
	}
	log := obs.Logger()

	if err := obs.Start(ctx); err != nil {
		log.Error("failed to start observability", observability.Err(err))
	}

	logcat := envBool(log, "FLOWTRACE_LOGCAT", false)
	countEmissions := envBool(log, "FLOWTRACE_COUNT", true)
	interval := envDuration(log, "FLOWTRACE_INTERVAL", time.Second)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Info("Shutting down flowtrace...")
		cancel()
	}()

	backend := tracingImpl.NewBackend(obs)
	traced := flowtracing.TraceEach(
		flow.Retry(ticks(interval), retryImpl.NewRetry(3, retry.WithInterval(interval))),
		backend,
		flowtracing.Config[int64]{
			FlowName:           cfg.ServiceName + ".ticks",
			Logcat:             logcat,
			TraceEmissionCount: countEmissions,
		},
	)

	log.Info("tracing flow",
		observability.String("flow", cfg.ServiceName+".ticks"),
		observability.Bool("logcat", logcat),
		observability.Bool("emissionCount", countEmissions),
	)

	err = traced.Collect(ctx, func(v int64) error {
		log.Debug("tick delivered", observability.Int64("value", v))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("flow failed", observability.Err(err))
	}
	log.Info("flowtrace stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := obs.Close(shutdownCtx); err != nil {
		log.Error("failed to close observability", observability.Err(err))
	}
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func ticks(interval time.Duration) flow.Flow[int64] {
	return func(ctx context.Context, collect func(int64) error) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var n int64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				n++
				if err := collect(n); err != nil {
					return err
				}
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(log observability.Logger, key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn("invalid boolean, using default", observability.String("key", key), observability.Err(err))
		return fallback
	}
	return v
}

func envDuration(log observability.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Warn("invalid duration, using default", observability.String("key", key), observability.String("value", raw))
		return fallback
	}
	return v
}
