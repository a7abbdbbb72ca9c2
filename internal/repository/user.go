package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByName(ctx context.Context, name string) (*entity.User, error)
	All(ctx context.Context) ([]*entity.User, error)
}

type userRepository struct {
	conn *sql.DB

	// the sqlite driver does not support concurrent writes
	writeLock sync.Mutex
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Create(ctx context.Context, user *entity.User) error {
	that.writeLock.Lock()
	defer that.writeLock.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO users (name, email, created_at) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.Name, user.Email, user.CreatedAt.Unix())
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				return fmt.Errorf("%w: user %s", apperror.ErrAlreadyExists, user.Name)
			}
		}

		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	query := `SELECT name, email, created_at FROM users WHERE name = ?`

	user, err := scanUser(that.conn.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return user, nil
}

// All returns users in registration order.
func (that *userRepository) All(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT name, email, created_at FROM users ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan user: %w", err)
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate users: %w", err)
	}

	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		user      entity.User
		createdAt int64
	)

	if err := row.Scan(&user.Name, &user.Email, &createdAt); err != nil {
		return nil, err
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()

	return &user, nil
}
