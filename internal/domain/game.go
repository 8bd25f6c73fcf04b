package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game is a pickup game scheduled at a court.
type Game struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	HostID     string    `json:"host_id"`
	Sport      string    `json:"sport"`
	StartsAt   time.Time `json:"starts_at"`
	MaxPlayers int       `json:"max_players"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateGameInput holds the fields accepted by POST /api/games.
type CreateGameInput struct {
	CourtID    uuid.UUID `json:"court_id"`
	Sport      string    `json:"sport"`
	StartsAt   time.Time `json:"starts_at"`
	MaxPlayers int       `json:"max_players"`
	Notes      string    `json:"notes"`
}

func (in CreateGameInput) Validate() error {
	if in.CourtID == uuid.Nil {
		return fmt.Errorf("court_id is required")
	}
	if in.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	if in.MaxPlayers <= 0 {
		return fmt.Errorf("max_players must be positive, got %d", in.MaxPlayers)
	}
	return RequireFields(map[string]string{"sport": in.Sport})
}
