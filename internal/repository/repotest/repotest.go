// Package repotest provides in-memory repositories for tests. Each fake
// counts calls and can be told to fail.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/repository"
	"github.com/google/uuid"
)

// Courts is an in-memory repository.CourtRepository.
type Courts struct {
	mu        sync.Mutex
	rows      []domain.Court
	ListCalls int
	ListErr   error
	FindErr   error
}

// NewCourts seeds the fake with rows in the given (arbitrary) order.
func NewCourts(rows ...domain.Court) *Courts {
	return &Courts{rows: rows}
}

func (f *Courts) List(context.Context, repository.DBTX) ([]domain.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := append([]domain.Court{}, f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *Courts) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, c := range f.rows {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

// Users is an in-memory repository.UserRepository enforcing unique emails.
type Users struct {
	mu          sync.Mutex
	rows        []domain.User
	ListCalls   int
	CreateCalls int
	ListErr     error
	CreateErr   error
}

// NewUsers seeds the fake with rows.
func NewUsers(rows ...domain.User) *Users {
	return &Users{rows: rows}
}

func (f *Users) List(context.Context, repository.DBTX) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]domain.User{}, f.rows...), nil
}

func (f *Users) Create(_ context.Context, _ repository.DBTX, input domain.CreateUserInput) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	for _, u := range f.rows {
		if u.Email == input.Email {
			return nil, repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u := domain.User{ID: uuid.New(), Email: input.Email, Name: input.Name, CreatedAt: now, UpdatedAt: now}
	f.rows = append(f.rows, u)
	return &u, nil
}

// Games is an in-memory repository.GameRepository.
type Games struct {
	mu          sync.Mutex
	rows        []domain.Game
	CreateCalls int
	ListErr     error
	CreateErr   error
}

// NewGames seeds the fake with rows.
func NewGames(rows ...domain.Game) *Games {
	return &Games{rows: rows}
}

func (f *Games) List(context.Context, repository.DBTX) ([]domain.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := append([]domain.Game{}, f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f *Games) Create(_ context.Context, _ repository.DBTX, hostID string, input domain.CreateGameInput) (*domain.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	g := domain.Game{
		ID:         uuid.New(),
		CourtID:    input.CourtID,
		HostID:     hostID,
		Sport:      input.Sport,
		StartsAt:   input.StartsAt,
		MaxPlayers: input.MaxPlayers,
		Notes:      input.Notes,
		CreatedAt:  time.Now().UTC(),
	}
	f.rows = append(f.rows, g)
	return &g, nil
}

// Publisher records published messages.
type Publisher struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// Message is one recorded publish.
type Message struct {
	Topic string
	Key   string
	Value []byte
}

func (p *Publisher) Publish(_ context.Context, topic string, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, Message{Topic: topic, Key: string(key), Value: value})
	return nil
}

// Topics returns the topics published so far, in order.
func (p *Publisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.Messages))
	for _, m := range p.Messages {
		topics = append(topics, m.Topic)
	}
	return topics
}
