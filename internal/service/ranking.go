package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

// Ranking is one row of the leaderboard. Position starts at 1.
type Ranking struct {
	Position   int    `json:"position"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}

type RankingService interface {
	GetRankings(ctx context.Context) ([]Ranking, error)
}

type userLister interface {
	All(ctx context.Context) ([]*entity.User, error)
}

type winCounter interface {
	Wins(ctx context.Context) (map[string]int, error)
}

type rankingService struct {
	userRepo userLister
	gameRepo winCounter
}

func NewRankingService(userRepo userLister, gameRepo winCounter) RankingService {
	return &rankingService{
		userRepo: userRepo,
		gameRepo: gameRepo,
	}
}

func (that *rankingService) GetRankings(ctx context.Context) ([]Ranking, error) {
	users, err := that.userRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	wins, err := that.gameRepo.Wins(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not count wins: %w", err)
	}

	return RankUsers(users, wins), nil
}

// RankUsers orders users by wins, most first. Users with equal wins keep their input order.
func RankUsers(users []*entity.User, wins map[string]int) []Ranking {
	rankings := make([]Ranking, 0, len(users))
	for _, user := range users {
		rankings = append(rankings, Ranking{PlayerName: user.Name, Wins: wins[user.Name]})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Wins > rankings[j].Wins
	})

	for i := range rankings {
		rankings[i].Position = i + 1
	}

	return rankings
}
