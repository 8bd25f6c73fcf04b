package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/courtside/platform/internal/cache"
	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/repository"
)

// UsersCacheKey is the single, unscoped cache key for the user listing.
const UsersCacheKey = "users"

// UserService lists users through the read-through cache and creates them.
type UserService struct {
	db     repository.DBTX
	users  repository.UserRepository
	cache  *cache.Accessor
	ttl    time.Duration
	events EventPublisher
	logger *slog.Logger
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(
	db repository.DBTX,
	users repository.UserRepository,
	accessor *cache.Accessor,
	ttl time.Duration,
	events EventPublisher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		db:     db,
		users:  users,
		cache:  accessor,
		ttl:    ttl,
		events: events,
		logger: logger,
	}
}

// List returns all users, served from cache for up to the TTL.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := cache.ReadThrough(ctx, s.cache, UsersCacheKey, s.ttl, func(ctx context.Context) ([]domain.User, error) {
		return s.users.List(ctx, s.db)
	})
	if err != nil {
		return nil, domain.ErrInternal("Failed to fetch users", err)
	}
	return users, nil
}

// Create inserts a user. The listing cache is not invalidated; new users
// appear once the cached snapshot expires.
func (s *UserService) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	user, err := s.users.Create(ctx, s.db, input)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrConflict("email already registered")
		}
		return nil, domain.ErrInternal("Failed to create user", err)
	}

	publishBestEffort(ctx, s.events, s.logger, domain.NewEvent(domain.TopicUserCreated, user.ID.String(), user))
	return user, nil
}
