package bets

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusWon     Status = "WON"
	StatusLost    Status = "LOST"
)

// Bet is a stake on one side of a match. Odds and PotentialPayout are
// frozen at placement; settlement only ever moves Status out of
// PENDING, never back.
type Bet struct {
	ID              string
	UserID          string
	MatchID         string
	TeamID          string
	Amount          decimal.Decimal
	Odds            decimal.Decimal
	PotentialPayout decimal.Decimal
	Status          Status
	PlacedAt        time.Time
}

type Bets interface {
	// Insert persists a new PENDING bet inside the placement
	// transaction.
	Insert(tx *sql.Tx, b *Bet) error

	// ListPendingForUpdate snapshots and row-locks every PENDING bet
	// of a match for settlement fan-out.
	ListPendingForUpdate(tx *sql.Tx, matchID string) ([]Bet, error)

	// SettleWinners flips PENDING bets on the winning team to WON and
	// returns how many it flipped. The status predicate re-checks
	// PENDING at write time.
	SettleWinners(tx *sql.Tx, matchID, winnerTeamID string) (int64, error)

	// SettleLosers flips the remaining PENDING bets of the match to
	// LOST and returns how many it flipped.
	SettleLosers(tx *sql.Tx, matchID, winnerTeamID string) (int64, error)

	// ListByUser returns a user's bets, newest first.
	ListByUser(ctx context.Context, userID string) ([]Bet, error)
}
