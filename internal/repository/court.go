package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtside/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const courtColumns = `id, name, address, city, sport, surface, latitude, longitude, lights, created_at`

type courtRepo struct{}

// NewCourtRepository returns a pgx-backed CourtRepository.
func NewCourtRepository() CourtRepository {
	return &courtRepo{}
}

func (r *courtRepo) List(ctx context.Context, db DBTX) ([]domain.Court, error) {
	rows, err := db.Query(ctx, `SELECT `+courtColumns+` FROM courts ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query courts: %w", err)
	}
	defer rows.Close()

	courts := []domain.Court{}
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courts: %w", err)
	}
	return courts, nil
}

func (r *courtRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Court, error) {
	row := db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1`, id)
	c, err := scanCourt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func scanCourt(row pgx.Row) (*domain.Court, error) {
	var c domain.Court
	var surface *string
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Sport, &surface,
		&c.Latitude, &c.Longitude, &c.Lights, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan court: %w", err)
	}
	if surface != nil {
		c.Surface = *surface
	}
	return &c, nil
}
