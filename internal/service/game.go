package service

import (
	"context"
	"log/slog"

	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/repository"
)

// GameService schedules pickup games.
type GameService struct {
	db     repository.DBTX
	games  repository.GameRepository
	courts repository.CourtRepository
	events EventPublisher
	logger *slog.Logger
}

// NewGameService creates a new GameService. events may be nil.
func NewGameService(
	db repository.DBTX,
	games repository.GameRepository,
	courts repository.CourtRepository,
	events EventPublisher,
	logger *slog.Logger,
) *GameService {
	return &GameService{db: db, games: games, courts: courts, events: events, logger: logger}
}

// List returns all games ordered by start time.
func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	games, err := s.games.List(ctx, s.db)
	if err != nil {
		return nil, domain.ErrInternal("Failed to fetch games", err)
	}
	return games, nil
}

// Create schedules a game at an existing court, hosted by hostID.
func (s *GameService) Create(ctx context.Context, hostID string, input domain.CreateGameInput) (*domain.Game, error) {
	if hostID == "" {
		return nil, domain.ErrUnauthorized()
	}
	if err := input.Validate(); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	court, err := s.courts.FindByID(ctx, s.db, input.CourtID)
	if err != nil {
		return nil, domain.ErrInternal("Failed to create game", err)
	}
	if court == nil {
		return nil, domain.ErrNotFound("court", input.CourtID.String())
	}

	game, err := s.games.Create(ctx, s.db, hostID, input)
	if err != nil {
		return nil, domain.ErrInternal("Failed to create game", err)
	}

	publishBestEffort(ctx, s.events, s.logger, domain.NewEvent(domain.TopicGameCreated, game.ID.String(), game))
	return game, nil
}
