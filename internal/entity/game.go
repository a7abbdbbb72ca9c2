package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
)

const maxMoves = BoardSize * BoardSize

// Move is one history record. Row and Col are stored as x and y.
type Move struct {
	Player string `json:"player"`
	Row    int    `json:"x"`
	Col    int    `json:"y"`
}

// Game is the aggregate for one match between two users, referenced by name.
type Game struct {
	ID           string `json:"id"`
	PlayerOne    string `json:"player_one"`
	PlayerTwo    string `json:"player_two"`
	ActivePlayer string `json:"active_player"`
	Board        Board  `json:"board"`
	Status       Status `json:"status"`
	Winner       string `json:"winner,omitempty"`
	History      []Move `json:"history"`

	// Version is bumped by the repository on every save.
	Version int64 `json:"version"`
}

// NewGame starts an active game. Player one always moves first.
func NewGame(id, playerOne, playerTwo string) (*Game, error) {
	if playerOne == playerTwo {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSamePlayer, playerOne)
	}

	return &Game{
		ID:           id,
		PlayerOne:    playerOne,
		PlayerTwo:    playerTwo,
		ActivePlayer: playerOne,
		Status:       StatusActive,
		History:      []Move{},
	}, nil
}

func (that *Game) IsOver() bool {
	return that.Status.IsTerminal()
}

func (that *Game) IsPlayer(name string) bool {
	return name == that.PlayerOne || name == that.PlayerTwo
}

func (that *Game) IsActivePlayer(name string) bool {
	return name == that.ActivePlayer
}

func (that *Game) IsCellEmpty(row, col int) (bool, error) {
	if !InBounds(row, col) {
		return false, fmt.Errorf("%w: [%d][%d]", apperror.ErrOutOfBounds, row, col)
	}

	return that.Board.IsEmpty(row, col), nil
}

// ApplyMove writes the active player's mark, records it and hands the turn over.
// Turn order and cell emptiness are the caller's checks, see IsActivePlayer and IsCellEmpty.
func (that *Game) ApplyMove(row, col int) error {
	if that.IsOver() {
		return apperror.ErrGameFinished
	}

	if !InBounds(row, col) {
		return fmt.Errorf("%w: [%d][%d]", apperror.ErrOutOfBounds, row, col)
	}

	that.Board.Place(row, col, that.markOf(that.ActivePlayer))
	that.History = append(that.History, Move{Player: that.ActivePlayer, Row: row, Col: col})
	that.ActivePlayer = that.opponentOf(that.ActivePlayer)

	return nil
}

// HasActivePlayerWon is meant to be called right after ApplyMove, so it tests
// the mark of the player who just moved, not the one whose turn it now is.
func (that *Game) HasActivePlayerWon() bool {
	return that.Board.hasLine(that.markOf(that.lastMover()))
}

func (that *Game) IsBoardFull() bool {
	return len(that.History) == maxMoves
}

// MarkWon credits the player who made the last move.
func (that *Game) MarkWon() error {
	if err := that.finish(StatusWon); err != nil {
		return err
	}

	that.Winner = that.lastMover()

	return nil
}

func (that *Game) MarkTied() error {
	return that.finish(StatusTied)
}

func (that *Game) MarkCancelled() error {
	return that.finish(StatusCancelled)
}

func (that *Game) finish(status Status) error {
	if that.IsOver() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameFinished, that.Status)
	}

	that.Status = status

	return nil
}

func (that *Game) lastMover() string {
	return that.opponentOf(that.ActivePlayer)
}

func (that *Game) opponentOf(name string) string {
	if name == that.PlayerOne {
		return that.PlayerTwo
	}
	return that.PlayerOne
}

func (that *Game) markOf(name string) Mark {
	if name == that.PlayerOne {
		return MarkX
	}
	return MarkO
}
