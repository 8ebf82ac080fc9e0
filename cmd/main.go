package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ecoperks/ecosort/internal/adapters/http/api"
	"github.com/ecoperks/ecosort/internal/adapters/http/swagger"
	"github.com/ecoperks/ecosort/internal/adapters/oracle"
	app "github.com/ecoperks/ecosort/internal/app"
	"github.com/ecoperks/ecosort/internal/config"
	"github.com/ecoperks/ecosort/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout          = 10 * time.Second
	writeTimeout         = 60 * time.Second // oracle round-trips happen inside request handling
	idleTimeout          = 60 * time.Second
	readHeaderTimeout    = 5 * time.Second
	shutdownTimeout      = 30 * time.Second
	statsRefreshInterval = 10 * time.Second
)

func main() {
	// Service metrics live on a dedicated registry; drop the default
	// collectors to avoid duplicate runtime metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build classifier: " + err.Error() + "\n")
		return
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithClassifier(classifier),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithScoringWeights(cfg.PointsPerCorrect, cfg.PenaltyPerWrong),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startStatsRefresher(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// buildClassifier assembles the configured classifier oracle wrapped
// with timeout and retry.
func buildClassifier(cfg *config.Config) (oracle.Classifier, error) {
	var base oracle.Classifier
	switch cfg.OracleProvider {
	case "mock":
		base = oracle.NewMockClassifier("This looks like recyclable plastic.")
	default:
		anthropic, err := oracle.NewAnthropicClassifier(cfg.AnthropicAPIKey,
			oracle.WithModel(cfg.OracleModel),
			oracle.WithMaxTokens(cfg.OracleMaxTokens),
			oracle.WithJPEGQuality(cfg.JPEGQuality),
		)
		if err != nil {
			return nil, err
		}
		base = anthropic
	}

	return oracle.WithRetry(base,
		oracle.WithMaxAttempts(cfg.OracleMaxAttempts),
		oracle.WithAttemptTimeout(time.Duration(cfg.OracleTimeoutMS)*time.Millisecond),
	), nil
}

// startStatsRefresher periodically pulls service stats so gauge
// metrics stay current even without traffic.
func startStatsRefresher(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(statsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
