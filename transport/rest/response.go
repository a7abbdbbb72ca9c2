package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/service"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

const boardRowSeparator = "\n-----\n"

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type gameResponse struct {
	URLSafeKey    string   `json:"urlsafe_key"`
	PlayerOneName string   `json:"player_one_name"`
	PlayerTwoName string   `json:"player_two_name"`
	Board         string   `json:"board"`
	BoardRows     []string `json:"board_rows"`
	GameState     string   `json:"game_state"`
	Message       string   `json:"message"`
}

type activeGamesResponse struct {
	Games []string `json:"games"`
}

type rankingsResponse struct {
	Rankings []service.Ranking `json:"rankings"`
}

type moveResponse struct {
	PlayerName string `json:"player_name"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type historyResponse struct {
	Histories []moveResponse `json:"histories"`
}

type remindersResponse struct {
	Sent int `json:"sent"`
}

func newGameResponse(outcome *usecase.Outcome) gameResponse {
	rows := boardRows(outcome.Game.Board)

	return gameResponse{
		URLSafeKey:    outcome.Game.ID,
		PlayerOneName: outcome.Game.PlayerOne,
		PlayerTwoName: outcome.Game.PlayerTwo,
		Board:         strings.Join(rows, boardRowSeparator),
		BoardRows:     rows,
		GameState:     outcome.Game.Status.String(),
		Message:       outcome.Message,
	}
}

// boardRows formats each row as "X|O| ".
func boardRows(board entity.Board) []string {
	view := board.Render()

	rows := make([]string, 0, len(view))
	for _, row := range view {
		rows = append(rows, strings.Join(row[:], "|"))
	}

	return rows
}

func newHistoryResponse(moves []entity.Move) historyResponse {
	histories := make([]moveResponse, 0, len(moves))
	for _, move := range moves {
		histories = append(histories, moveResponse{PlayerName: move.Player, X: move.Row, Y: move.Col})
	}

	return historyResponse{Histories: histories}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// writeError hides internal failures behind a generic message and logs them.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrUnknownPlayer):
		return http.StatusNotFound, "A player with that name does not exist!"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "Game not found!"
	case errors.Is(err, apperror.ErrAlreadyExists):
		return http.StatusConflict, "A User with that name already exists!"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "The game was changed by another request, try again!"
	case errors.Is(err, apperror.ErrOutOfBounds):
		return http.StatusBadRequest, "Coordinates must be between 0 and 2!"
	case errors.Is(err, apperror.ErrSamePlayer):
		return http.StatusBadRequest, "A player can't play against themselves!"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
