// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dealer-finance-workers/internal/common/camunda"
	"dealer-finance-workers/internal/common/config"
	"dealer-finance-workers/internal/common/database"
	"dealer-finance-workers/internal/common/logger"
	"dealer-finance-workers/internal/common/observability"
	"dealer-finance-workers/pkg/registry"

	// Finance Workers (2)
	qvf "dealer-finance-workers/internal/workers/finance/quote-vehicle-finance"
	sbo "dealer-finance-workers/internal/workers/finance/select-bank-offer"

	// Profitability Workers (3)
	cr "dealer-finance-workers/internal/workers/profit/commission-report"
	cdp "dealer-finance-workers/internal/workers/profit/compute-deal-profit"
	ps "dealer-finance-workers/internal/workers/profit/partner-statement"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	reg, err := registry.LoadRegistry("configs/activity-registry.json")
	if err != nil {
		zapLog.Warn("activity registry not loaded", zap.Error(err))
	} else if err := reg.Validate(); err != nil {
		zapLog.Fatal("invalid activity registry", zap.Error(err))
	} else {
		zapLog.Info("activity registry loaded", zap.Strings("taskTypes", reg.TaskTypes()))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	var workers []*camunda.Worker

	register := func(taskType string, handle camunda.HandlerFunc) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.NewWorker(zeebeClient, taskType, wcfg.MaxJobsActive, handle, zapLog))
	}

	// --- Finance Workers (2) ---
	if config.IsWorkerEnabled(cfg, qvf.TaskType) {
		handler := qvf.NewHandler(qvf.ConfigFromApp(cfg), pg.DB, redis.Client, log)
		register(qvf.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, sbo.TaskType) {
		handler := sbo.NewHandler(sbo.ConfigFromApp(cfg), pg.DB, redis.Client, log)
		register(sbo.TaskType, handler.Handle)
	}

	// --- Profitability Workers (3) ---
	if config.IsWorkerEnabled(cfg, cdp.TaskType) {
		handler := cdp.NewHandler(cdp.ConfigFromApp(cfg), pg.DB, log)
		register(cdp.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, ps.TaskType) {
		handler := ps.NewHandler(ps.ConfigFromApp(cfg), pg.DB, log)
		register(ps.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, cr.TaskType) {
		handler := cr.NewHandler(cr.ConfigFromApp(cfg), pg.DB, log)
		register(cr.TaskType, handler.Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
