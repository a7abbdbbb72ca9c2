package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const (
	gameKeyPrefix  = "game:"
	activeGamesKey = "games:active"
	winsKey        = "wins"
)

type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	FindActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error)
	FindActive(ctx context.Context) ([]*entity.Game, error)
	Wins(ctx context.Context) (map[string]int, error)
}

type dbGame struct {
	client *redis.Client
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func playerActiveKey(name string) string {
	return "player:" + name + ":active"
}

// Save stores the game if the stored version still equals game.Version and bumps it.
// The active indexes and the winner's counter are updated in the same transaction.
func (that *dbGame) Save(ctx context.Context, game *entity.Game) error {
	key := gameKey(game.ID)

	next := *game
	next.Version = game.Version + 1

	gameJSON, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		stored, err := loadGame(ctx, tx, key)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return err
		}

		var storedVersion int64
		wasActive := true
		if stored != nil {
			storedVersion = stored.Version
			wasActive = !stored.IsOver()
		}

		if storedVersion != game.Version {
			return fmt.Errorf("%w: game %s is at version %d, got %d", apperror.ErrConflict, game.ID, storedVersion, game.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)

			for _, player := range []string{game.PlayerOne, game.PlayerTwo} {
				if game.IsOver() {
					pipe.SRem(ctx, playerActiveKey(player), game.ID)
				} else {
					pipe.SAdd(ctx, playerActiveKey(player), game.ID)
				}
			}

			if game.IsOver() {
				pipe.SRem(ctx, activeGamesKey, game.ID)
			} else {
				pipe.SAdd(ctx, activeGamesKey, game.ID)
			}

			if wasActive && game.Status == entity.StatusWon {
				pipe.HIncrBy(ctx, winsKey, game.Winner, 1)
			}

			return nil
		})

		return err
	}

	err = that.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: game %s", apperror.ErrConflict, game.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	game.Version = next.Version

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return loadGame(ctx, that.client, gameKey(id))
}

func (that *dbGame) FindActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error) {
	ids, err := that.client.SMembers(ctx, playerActiveKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active games of %s: %w", name, err)
	}

	return that.activeGames(ctx, ids)
}

func (that *dbGame) FindActive(ctx context.Context) ([]*entity.Game, error) {
	ids, err := that.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active games: %w", err)
	}

	return that.activeGames(ctx, ids)
}

// Wins returns the number of won games per player name.
func (that *dbGame) Wins(ctx context.Context) (map[string]int, error) {
	response, err := that.client.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get wins: %w", err)
	}

	wins := make(map[string]int, len(response))
	for name, raw := range response {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid win count for %s: %w", name, err)
		}

		wins[name] = count
	}

	return wins, nil
}

// activeGames loads the games by id, skipping ids whose game is gone or already over.
func (that *dbGame) activeGames(ctx context.Context, ids []string) ([]*entity.Game, error) {
	games := make([]*entity.Game, 0, len(ids))
	if len(ids) == 0 {
		return games, nil
	}

	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, gameKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", ids[i], err)
		}

		if !game.IsOver() {
			games = append(games, &game)
		}
	}

	return games, nil
}

func loadGame(ctx context.Context, client getter, key string) (*entity.Game, error) {
	response, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}
