package repository

import (
	"context"

	"github.com/courtside/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// CourtRepository provides access to courts.
type CourtRepository interface {
	// List returns every court ordered by name ascending.
	List(ctx context.Context, db DBTX) ([]domain.Court, error)

	// FindByID returns a court by ID, or nil if it does not exist.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Court, error)
}

// UserRepository provides access to users.
type UserRepository interface {
	// List returns every user ordered by created_at ascending.
	List(ctx context.Context, db DBTX) ([]domain.User, error)

	// Create inserts a new user and returns the stored row.
	// A duplicate email yields ErrDuplicate.
	Create(ctx context.Context, db DBTX, input domain.CreateUserInput) (*domain.User, error)
}

// GameRepository provides access to pickup games.
type GameRepository interface {
	// List returns every game ordered by starts_at ascending.
	List(ctx context.Context, db DBTX) ([]domain.Game, error)

	// Create inserts a new game hosted by hostID and returns the stored row.
	Create(ctx context.Context, db DBTX, hostID string, input domain.CreateGameInput) (*domain.Game, error)
}
