package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const reminderBody = "Hello %s, it's your turn!"

// Mailer delivers one plain text message. Retries are up to the implementation.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type ReminderService interface {
	SendReminders(ctx context.Context) (int, error)
	Run(ctx context.Context, interval time.Duration)
}

type activeGameLister interface {
	FindActive(ctx context.Context) ([]*entity.Game, error)
}

type userFinder interface {
	FindByName(ctx context.Context, name string) (*entity.User, error)
}

type reminderService struct {
	logger *slog.Logger

	gameRepo activeGameLister
	userRepo userFinder
	mailer   Mailer
	subject  string
}

func NewReminderService(logger *slog.Logger, gameRepo activeGameLister, userRepo userFinder, mailer Mailer, subject string) ReminderService {
	return &reminderService{
		logger: logger.With("component", "reminder"),

		gameRepo: gameRepo,
		userRepo: userRepo,
		mailer:   mailer,
		subject:  subject,
	}
}

// SendReminders mails every player whose turn it is in an active game, once per sweep.
// It returns the number of reminders delivered.
func (that *reminderService) SendReminders(ctx context.Context) (int, error) {
	log := that.logger.With("method", "SendReminders")

	games, err := that.gameRepo.FindActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not list active games: %w", err)
	}

	sent := 0
	seen := make(map[string]struct{}, len(games))

	for _, game := range games {
		name := game.ActivePlayer
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		user, err := that.userRepo.FindByName(ctx, name)
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("active player is not registered", "player", name, "game_id", game.ID)
			continue
		}
		if err != nil {
			return sent, fmt.Errorf("could not find user %s: %w", name, err)
		}

		if !user.HasEmail() {
			log.Debug("user has no email, skipping", "player", name)
			continue
		}

		if err = that.mailer.Send(ctx, user.Email, that.subject, fmt.Sprintf(reminderBody, user.Name)); err != nil {
			log.Error("could not send reminder", "player", name, "error", err)
			continue
		}

		sent++
	}

	log.Info("reminders sent", "count", sent, "active_games", len(games))

	return sent, nil
}

// Run repeats SendReminders every interval until ctx is done.
func (that *reminderService) Run(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "Run")

	if interval <= 0 {
		log.Warn("reminder interval must be positive, loop not started", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("reminder loop stopped")
			return
		case <-ticker.C:
			if _, err := that.SendReminders(ctx); err != nil {
				log.Error("reminder sweep failed", "error", err)
			}
		}
	}
}
