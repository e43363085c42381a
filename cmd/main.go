package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ravindrad/journey-planner-service/internal/app/config"
	"github.com/ravindrad/journey-planner-service/internal/app/dto"
	"github.com/ravindrad/journey-planner-service/internal/app/endpoints"
	"github.com/ravindrad/journey-planner-service/internal/app/service"
	"github.com/ravindrad/journey-planner-service/internal/app/transport"
	"github.com/ravindrad/journey-planner-service/internal/pkg/hub"
	"github.com/ravindrad/journey-planner-service/internal/pkg/journey"
	"github.com/ravindrad/journey-planner-service/internal/pkg/logger"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource/flightsource"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource/mcp"
	"github.com/ravindrad/journey-planner-service/internal/pkg/ticketsource/trainsource"
	"github.com/redis/go-redis/v9"
)

// @title           Journey Planner Service API
// @version         0.0.1
// @description     journey-planner-service
// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	sessions := startToolSessions(ctx, cfg)
	defer func() {
		for _, session := range sessions {
			session.Close()
		}
	}()

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, sessions)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

type toolSessions struct {
	flight *mcp.Session
	train  *mcp.Session
}

// startToolSessions launches both tool servers. A session that fails to
// start is kept in place unready, its queries resolve as source errors and
// the planner degrades to the other mode.
func startToolSessions(ctx context.Context, cfg config.Config) []*mcp.Session {
	flight := mcp.NewSession("flight",
		cfg.Sources.Flight.Command, strings.Fields(cfg.Sources.Flight.Args), nil)
	train := mcp.NewSession("train",
		cfg.Sources.Train.Command, strings.Fields(cfg.Sources.Train.Args), nil)

	if err := flight.Start(ctx); err != nil {
		slog.WarnContext(ctx, "flight tool session failed to start",
			slog.String("error", err.Error()))
	}

	if err := train.Start(ctx); err != nil {
		slog.WarnContext(ctx, "train tool session failed to start",
			slog.String("error", err.Error()))
	}

	return []*mcp.Session{flight, train}
}

func startHTTPServer(ctx context.Context, cfg config.Config, sessions []*mcp.Session) {
	endpts := makeEndpoints(ctx, &cfg, toolSessions{flight: sessions[0], train: sessions[1]})
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config, sessions toolSessions) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	executor := makeExecutor(cfg, sessions, redisClient)

	plannerService := service.NewPlannerService(
		hub.DefaultRegistry(),
		executor,
		cfg.Journey.HubCount,
		cfg.Journey.MinBufferMinutes,
		cfg.Journey.AccommodationFee,
		cfg.Journey.DigestTopN,
	)

	// init service endpoint
	return endpoints.Endpoints{
		JourneyEndpoint: endpoints.MakeJourneyEndpoint(plannerService),
	}
}

func makeExecutor(cfg *config.Config, sessions toolSessions, redisClient *redis.Client) *journey.Executor {
	flightSource := flightsource.NewSource(sessions.flight, ticketsource.Config{
		CallTimeout:   cfg.Sources.Flight.CallTimeout,
		WarmupTimeout: cfg.Sources.Flight.WarmupTimeout,
		MaxRetries:    cfg.Sources.Flight.MaxRetries,
	})

	trainSource := trainsource.NewSource(sessions.train, ticketsource.Config{
		CallTimeout: cfg.Sources.Train.CallTimeout,
	})

	executor := journey.NewExecutor(flightSource, trainSource, journey.ExecutorConfig{
		TrainConcurrency: cfg.Journey.TrainConcurrency,
		TrainRateRPS:     cfg.Sources.Train.RateLimit,
	})
	executor.Limiter = redis_rate.NewLimiter(redisClient)
	executor.Log = func(msg string) { slog.Debug(msg) }

	if cfg.Journey.CacheExpiration > 0 {
		executor.Cache = journey.NewSegmentCache(redisClient, cfg.Journey.CacheExpiration)
	}

	return executor
}
