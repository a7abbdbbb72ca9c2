package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/service"
)

type mockUserRepo struct {
	mock.Mock
}

func (that *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return that.Called(ctx, user).Error(0)
}

func (that *mockUserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	args := that.Called(ctx, name)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Save(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) FindActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error) {
	args := that.Called(ctx, name)
	games, _ := args.Get(0).([]*entity.Game)
	return games, args.Error(1)
}

type mockRankingService struct {
	mock.Mock
}

func (that *mockRankingService) GetRankings(ctx context.Context) ([]service.Ranking, error) {
	args := that.Called(ctx)
	rankings, _ := args.Get(0).([]service.Ranking)
	return rankings, args.Error(1)
}

type mockReminderService struct {
	mock.Mock
}

func (that *mockReminderService) SendReminders(ctx context.Context) (int, error) {
	args := that.Called(ctx)
	return args.Int(0), args.Error(1)
}
