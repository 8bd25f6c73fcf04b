package repository

import (
	"context"
	"fmt"

	"github.com/courtside/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const gameColumns = `id, court_id, host_id, sport, starts_at, max_players, notes, created_at`

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

func (r *gameRepo) List(ctx context.Context, db DBTX) ([]domain.Game, error) {
	rows, err := db.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY starts_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []domain.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func (r *gameRepo) Create(ctx context.Context, db DBTX, hostID string, input domain.CreateGameInput) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO games (id, court_id, host_id, sport, starts_at, max_players, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), now())
		RETURNING `+gameColumns,
		uuid.New(), input.CourtID, hostID, input.Sport, input.StartsAt, input.MaxPlayers, input.Notes)
	g, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	return g, nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	var notes *string
	err := row.Scan(&g.ID, &g.CourtID, &g.HostID, &g.Sport, &g.StartsAt, &g.MaxPlayers, &notes, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	if notes != nil {
		g.Notes = *notes
	}
	return &g, nil
}
