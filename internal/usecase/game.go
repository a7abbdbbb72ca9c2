package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/service"
)

const (
	MsgNewGame       = "Good luck playing Tic-Tac-Toe!"
	MsgMakeMove      = "Time to make a move!"
	MsgGameOver      = "Game already over!"
	MsgNotYourTurn   = "It's not your turn!"
	MsgFieldNotEmpty = "Field at [%d][%d] is not empty!"
	MsgWin           = "You win!"
	MsgTie           = "Game is a tie!"
	MsgTokenPlaced   = "Token placed at [%d][%d]!"
	MsgCancelDenied  = "You can't cancel an already finished game"
	MsgCancelled     = "The game has been cancelled!"
	msgUserCreated   = "User %s created!"
)

// Outcome is a game state together with the message explaining what happened to it.
type Outcome struct {
	Game    *entity.Game
	Message string
}

type userRepo interface {
	Create(ctx context.Context, user *entity.User) error
	FindByName(ctx context.Context, name string) (*entity.User, error)
}

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	FindActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error)
}

type rankingService interface {
	GetRankings(ctx context.Context) ([]service.Ranking, error)
}

type reminderService interface {
	SendReminders(ctx context.Context) (int, error)
}

type GameManager struct {
	logger *slog.Logger

	userRepo userRepo
	gameRepo gameRepo
	rankings rankingService
	reminder reminderService
}

func NewGameManager(logger *slog.Logger, userRepo userRepo, gameRepo gameRepo, rankings rankingService, reminder reminderService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		userRepo: userRepo,
		gameRepo: gameRepo,
		rankings: rankings,
		reminder: reminder,
	}
}

func (that *GameManager) CreateUser(ctx context.Context, name, email string) (string, error) {
	user := &entity.User{
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := that.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	that.logger.Info("user created", "user", name)

	return fmt.Sprintf(msgUserCreated, name), nil
}

func (that *GameManager) NewGame(ctx context.Context, playerOneName, playerTwoName string) (*Outcome, error) {
	playerOne, err := that.getPlayer(ctx, playerOneName)
	if err != nil {
		return nil, err
	}

	playerTwo, err := that.getPlayer(ctx, playerTwoName)
	if err != nil {
		return nil, err
	}

	game, err := entity.NewGame(uuid.NewString(), playerOne.Name, playerTwo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save new game: %w", err)
	}

	that.logger.Info("game started", "game_id", game.ID, "player_one", game.PlayerOne, "player_two", game.PlayerTwo)

	return &Outcome{Game: game, Message: MsgNewGame}, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*Outcome, error) {
	game, err := that.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Outcome{Game: game, Message: MsgMakeMove}, nil
}

// MakeMove applies one move for playerName. Rule violations come back as an Outcome
// carrying the reason and the unchanged game, not as an error.
func (that *GameManager) MakeMove(ctx context.Context, id, playerName string, row, col int) (*Outcome, error) {
	log := that.logger.With("method", "MakeMove", "game_id", id, "player", playerName)

	game, err := that.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsOver() {
		return &Outcome{Game: game, Message: MsgGameOver}, nil
	}

	player, err := that.getPlayer(ctx, playerName)
	if err != nil {
		return nil, err
	}

	if !game.IsPlayer(player.Name) {
		return nil, fmt.Errorf("%w: %s does not play game %s", apperror.ErrUnknownPlayer, player.Name, game.ID)
	}

	if !game.IsActivePlayer(player.Name) {
		return &Outcome{Game: game, Message: MsgNotYourTurn}, nil
	}

	empty, err := game.IsCellEmpty(row, col)
	if err != nil {
		return nil, err
	}

	if !empty {
		return &Outcome{Game: game, Message: fmt.Sprintf(MsgFieldNotEmpty, row, col)}, nil
	}

	if err = game.ApplyMove(row, col); err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	message := fmt.Sprintf(MsgTokenPlaced, row, col)

	switch {
	case game.HasActivePlayerWon():
		err = game.MarkWon()
		message = MsgWin
	case game.IsBoardFull():
		err = game.MarkTied()
		message = MsgTie
	}

	if err != nil {
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}

	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save move: %w", err)
	}

	log.Debug("move applied", "x", row, "y", col, "status", game.Status)

	return &Outcome{Game: game, Message: message}, nil
}

func (that *GameManager) CancelGame(ctx context.Context, id string) (*Outcome, error) {
	game, err := that.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsOver() {
		return &Outcome{Game: game, Message: MsgCancelDenied}, nil
	}

	if err = game.MarkCancelled(); err != nil {
		return nil, fmt.Errorf("failed to cancel game: %w", err)
	}

	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save cancelled game: %w", err)
	}

	that.logger.Info("game cancelled", "game_id", game.ID)

	return &Outcome{Game: game, Message: MsgCancelled}, nil
}

// GetUserGames returns the ids of the player's active games. Unknown names have none.
func (that *GameManager) GetUserGames(ctx context.Context, playerName string) ([]string, error) {
	games, err := that.gameRepo.FindActiveByPlayer(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get games of %s: %w", playerName, err)
	}

	ids := make([]string, 0, len(games))
	for _, game := range games {
		ids = append(ids, game.ID)
	}

	return ids, nil
}

func (that *GameManager) GetUserRankings(ctx context.Context) ([]service.Ranking, error) {
	rankings, err := that.rankings.GetRankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rankings: %w", err)
	}

	return rankings, nil
}

func (that *GameManager) GetGameHistory(ctx context.Context, id string) ([]entity.Move, error) {
	game, err := that.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return game.History, nil
}

func (that *GameManager) SendReminders(ctx context.Context) (int, error) {
	sent, err := that.reminder.SendReminders(ctx)
	if err != nil {
		return sent, fmt.Errorf("failed to send reminders: %w", err)
	}

	return sent, nil
}

func (that *GameManager) getGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}

	return game, nil
}

// getPlayer resolves a name to a registered user, reporting a missing one as ErrUnknownPlayer.
func (that *GameManager) getPlayer(ctx context.Context, name string) (*entity.User, error) {
	user, err := that.userRepo.FindByName(ctx, name)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownPlayer, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", name, err)
	}

	return user, nil
}
