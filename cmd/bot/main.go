package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/quizpulse/internal/adapter/httpserver"
	"github.com/pscheid92/quizpulse/internal/adapter/redis"
	"github.com/pscheid92/quizpulse/internal/adapter/telegram"
	"github.com/pscheid92/quizpulse/internal/adapter/twitchirc"
	"github.com/pscheid92/quizpulse/internal/bank"
	"github.com/pscheid92/quizpulse/internal/dispatch"
	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/pscheid92/quizpulse/internal/game"
	"github.com/pscheid92/quizpulse/internal/i18n"
	"github.com/pscheid92/quizpulse/internal/platform/config"
	"github.com/pscheid92/quizpulse/internal/platform/logging"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRedis(cfg *config.Config) *redis.Client {
	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to create Redis client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupTransport(cfg *config.Config) (domain.Transport, string) {
	switch cfg.Transport {
	case config.TransportTelegram:
		transport, err := telegram.New(telegram.Config{Token: cfg.TelegramToken, ChatID: cfg.TelegramChatID})
		if err != nil {
			slog.Error("Failed to create Telegram transport", "error", err)
			os.Exit(1)
		}
		return transport, telegram.ChannelName(cfg.TelegramChatID)
	default:
		channel := cfg.TwitchChannel
		transport := twitchirc.New(twitchirc.Config{
			Channel:   channel,
			Nick:      cfg.TwitchNick,
			AuthToken: cfg.TwitchAuthToken,
		})
		return transport, transport.ChannelName()
	}
}

func setupQuestions(cfg *config.Config) []domain.Question {
	pool, err := bank.LoadDir(cfg.QuestionDir)
	if err != nil {
		slog.Error("Failed to load question bank", "dir", cfg.QuestionDir, "error", err)
		os.Exit(1)
	}
	if len(pool) == 0 {
		slog.Error("Question bank is empty", "dir", cfg.QuestionDir)
		os.Exit(1)
	}
	slog.Info("Question bank loaded", "dir", cfg.QuestionDir, "questions", len(pool))
	return pool
}

func setupSelector(cfg *config.Config, pool []domain.Question) game.Selector {
	if cfg.Selection == config.SelectionRandom {
		return game.NewRandomSelector(pool, time.Now().UnixNano())
	}
	return game.NewSequentialSelector(pool)
}

func runGracefulShutdown(srv *httpserver.Server, engine *game.Engine, transport domain.Transport, redisClient *redis.Client) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		engine.Shutdown()
		if err := transport.Close(); err != nil {
			slog.Error("Transport close error", "error", err)
		}
		if err := redisClient.Close(); err != nil {
			slog.Error("Redis close error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "transport", cfg.Transport, "port", cfg.Port)

	redisClient := setupRedis(cfg)

	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		slog.Error("Failed to load locale catalogs", "error", err)
		os.Exit(1)
	}

	pool := setupQuestions(cfg)
	selector := setupSelector(cfg, pool)

	userRepo := redis.NewUserRepository(redisClient)
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	seed, err := userRepo.Load(loadCtx)
	cancel()
	if err != nil {
		slog.Error("Failed to load player records", "error", err)
		os.Exit(1)
	}
	slog.Info("Player records loaded", "players", len(seed))

	scores := game.NewScoreboard(userRepo, seed)

	transport, channel := setupTransport(cfg)

	engine := game.NewEngine(transport, scores, selector, translator, clock, game.Settings{
		Channel:              channel,
		QuestionDuration:     cfg.QuestionDuration,
		TimeBetweenQuestions: cfg.TimeBetweenQuestions,
		TimeBeforeTip:        cfg.TimeBeforeTip,
		NoAnswerLimit:        cfg.NoAnswerLimit,
	})
	engine.Start()

	dispatcher := dispatch.New(cfg.CommandPrefix, channel, engine, scores, transport, translator, pool)
	transport.OnMessage(dispatcher.HandleMessage)

	connectCtx, cancelConnect := context.WithCancel(context.Background())
	defer cancelConnect()
	if err := transport.Connect(connectCtx); err != nil {
		slog.Error("Failed to connect chat transport", "error", err)
		os.Exit(1)
	}

	healthChecks := []httpserver.HealthCheck{
		{Name: "redis", Check: redisClient.Ping},
	}
	srv := httpserver.NewServer(cfg.Port, scores, engine, healthChecks)

	done := runGracefulShutdown(srv, engine, transport, redisClient)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
