package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-api/internal/config"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-api/internal/service"
	"github.com/rocketscienceinc/tictactoe-api/internal/transport/mail"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-api/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	if err = os.MkdirAll(filepath.Dir(conf.SQLiteStoragePath), 0o755); err != nil {
		return fmt.Errorf("could not create sqlite directory: %w", err)
	}

	sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err := sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	mailer, err := newMailer(logger, conf)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	rankingService := service.NewRankingService(userRepo, gameRepo)
	reminderService := service.NewReminderService(logger, gameRepo, userRepo, mailer, conf.Reminder.Subject)

	gameManager := usecase.NewGameManager(logger, userRepo, gameRepo, rankingService, reminderService)

	if conf.Reminder.Disabled {
		log.Info("Reminder loop disabled")
	} else {
		log.Info("Starting reminder loop", "interval", conf.Reminder.Interval)
		go reminderService.Run(ctx, conf.Reminder.Interval)
	}

	limiter := rest.NewIPRateLimiter(logger, rate.Limit(conf.RateLimit.RPS), conf.RateLimit.Burst)
	router := rest.NewRouter(logger, gameManager, conf.CORS.AllowedOrigins, limiter)
	server := rest.NewServer(logger, conf.HTTPPort, router, limiter)

	// run HTTP server
	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newMailer(logger *slog.Logger, conf *config.Config) (service.Mailer, error) {
	if conf.SMTP.Host == "" {
		return mail.NewLogSender(logger, conf.Reminder.Sender), nil
	}

	sender, err := mail.NewSMTPSender(mail.Config{
		Host:     conf.SMTP.Host,
		Port:     conf.SMTP.Port,
		Username: conf.SMTP.Username,
		Password: conf.SMTP.Password,
		Sender:   conf.Reminder.Sender,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create mailer: %w", err)
	}

	return sender, nil
}
