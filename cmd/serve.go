package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	config "task-service.com/task-service/internal/configs"
	"task-service.com/task-service/internal/database"
	httpapi "task-service.com/task-service/internal/http"
	"task-service.com/task-service/internal/ratelimit"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Connects to the task database and serves the task HTTP API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("failed to close database: %v", err)
			}
		}()

		limiter, closeLimiter, err := newLimiter(cfg)
		if err != nil {
			return err
		}
		defer closeLimiter()

		taskRepo := repository.NewTaskRepository(db)
		taskService := services.NewTaskService(taskRepo)

		e := echo.New()
		e.HideBanner = true
		e.IPExtractor = ipExtractor(cfg)
		httpapi.Register(e, httpapi.NewHandler(taskService), limiter)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()

			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
			)
			defer cancel()

			return e.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

// ipExtractor honours X-Forwarded-For only when it arrives through one of
// the configured proxies.
func ipExtractor(cfg config.Config) echo.IPExtractor {
	if len(cfg.TrustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{echo.TrustLoopback(false), echo.TrustLinkLocal(false), echo.TrustPrivateNet(false)}
	for _, ipNet := range cfg.TrustedProxies {
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}

// newLimiter returns a nil limiter when rate limiting is disabled.
func newLimiter(cfg config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.RateLimit == 0 {
		return nil, func() {}, nil
	}

	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute), func() {}, nil
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.RedisRateLimitKey, cfg.RateLimit, time.Minute)
	return limiter, redisClient.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
