// Package wager is the betting ledger's business core: stake
// reservation at placement and one-shot settlement fan-out. Every
// mutation runs as guarded single-statement updates inside one database
// transaction; the engine holds no in-process locks and no balance
// cache.
package wager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avoronin/matchbook/internal/producer"
	"github.com/avoronin/matchbook/internal/repos/bets"
	pgbets "github.com/avoronin/matchbook/internal/repos/bets/postgres"
	"github.com/avoronin/matchbook/internal/repos/matches"
	pgmatches "github.com/avoronin/matchbook/internal/repos/matches/postgres"
	"github.com/avoronin/matchbook/internal/repos/users"
	pgusers "github.com/avoronin/matchbook/internal/repos/users/postgres"
)

// Publisher emits wager events after a transaction commits. Implemented
// by producer.KafkaPublisher; nil disables publishing.
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e producer.BetPlaced) error
	PublishMatchSettled(ctx context.Context, e producer.MatchSettled) error
}

type Service struct {
	db      *sql.DB
	users   users.Users
	matches matches.Matches
	bets    bets.Bets
	pub     Publisher
}

type Option func(*Service)

// WithPublisher wires an event publisher into the engine.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

func New(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:      db,
		users:   pgusers.New(db),
		matches: pgmatches.New(db),
		bets:    pgbets.New(db),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetUser is the read path for account display.
func (s *Service) GetUser(ctx context.Context, userID string) (*users.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// ListBetsForUser returns the user's bets, newest first.
func (s *Service) ListBetsForUser(ctx context.Context, userID string) ([]bets.Bet, error) {
	out, err := s.bets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bets for user: %w", err)
	}

	return out, nil
}
