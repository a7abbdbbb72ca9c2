package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/service"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
)

type gameUseCase interface {
	CreateUser(ctx context.Context, name, email string) (string, error)
	NewGame(ctx context.Context, playerOneName, playerTwoName string) (*usecase.Outcome, error)
	GetGame(ctx context.Context, id string) (*usecase.Outcome, error)
	MakeMove(ctx context.Context, id, playerName string, row, col int) (*usecase.Outcome, error)
	CancelGame(ctx context.Context, id string) (*usecase.Outcome, error)
	GetUserGames(ctx context.Context, playerName string) ([]string, error)
	GetUserRankings(ctx context.Context) ([]service.Ranking, error)
	GetGameHistory(ctx context.Context, id string) ([]entity.Move, error)
	SendReminders(ctx context.Context) (int, error)
}

type createUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type newGameRequest struct {
	PlayerOneName string `json:"player_one_name"`
	PlayerTwoName string `json:"player_two_name"`
}

type makeMoveRequest struct {
	PlayerName string `json:"player_name"`
	X          *int   `json:"x"`
	Y          *int   `json:"y"`
}

type handlers struct {
	logger *slog.Logger

	gameUseCase gameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),

		gameUseCase: gameUseCase,
	}
}

func (that *handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateUser")

	var request createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "Invalid request body!")
		return
	}

	if request.UserName == "" {
		writeBadRequest(w, "user_name is required!")
		return
	}

	message, err := that.gameUseCase.CreateUser(r.Context(), request.UserName, request.Email)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "NewGame")

	var request newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "Invalid request body!")
		return
	}

	if request.PlayerOneName == "" || request.PlayerTwoName == "" {
		writeBadRequest(w, "player_one_name and player_two_name are required!")
		return
	}

	outcome, err := that.gameUseCase.NewGame(r.Context(), request.PlayerOneName, request.PlayerTwoName)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(outcome))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	outcome, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With("method", "GetGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(outcome))
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MakeMove")

	var request makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "Invalid request body!")
		return
	}

	if request.PlayerName == "" || request.X == nil || request.Y == nil {
		writeBadRequest(w, "player_name, x and y are required!")
		return
	}

	outcome, err := that.gameUseCase.MakeMove(r.Context(), chi.URLParam(r, "id"), request.PlayerName, *request.X, *request.Y)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(outcome))
}

func (that *handlers) CancelGame(w http.ResponseWriter, r *http.Request) {
	outcome, err := that.gameUseCase.CancelGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With("method", "CancelGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(outcome))
}

func (that *handlers) GetUserGames(w http.ResponseWriter, r *http.Request) {
	playerName := r.URL.Query().Get("player_name")
	if playerName == "" {
		writeBadRequest(w, "player_name is required!")
		return
	}

	ids, err := that.gameUseCase.GetUserGames(r.Context(), playerName)
	if err != nil {
		writeError(w, that.logger.With("method", "GetUserGames"), err)
		return
	}

	writeJSON(w, http.StatusOK, activeGamesResponse{Games: ids})
}

func (that *handlers) GetUserRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := that.gameUseCase.GetUserRankings(r.Context())
	if err != nil {
		writeError(w, that.logger.With("method", "GetUserRankings"), err)
		return
	}

	if rankings == nil {
		rankings = []service.Ranking{}
	}

	writeJSON(w, http.StatusOK, rankingsResponse{Rankings: rankings})
}

func (that *handlers) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	moves, err := that.gameUseCase.GetGameHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger.With("method", "GetGameHistory"), err)
		return
	}

	writeJSON(w, http.StatusOK, newHistoryResponse(moves))
}

func (that *handlers) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := that.gameUseCase.SendReminders(r.Context())
	if err != nil {
		writeError(w, that.logger.With("method", "SendReminders"), err)
		return
	}

	writeJSON(w, http.StatusOK, remindersResponse{Sent: sent})
}
