package wager

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMatchUnavailable means the match is missing or no longer open
	// for betting.
	ErrMatchUnavailable = errors.New("match not available for betting")

	// ErrInvalidSelection means the chosen team is not one of the
	// match's two sides.
	ErrInvalidSelection = errors.New("team is not part of the match")

	// ErrInvalidStake means the stake is not a positive amount with at
	// most 2 fractional digits.
	ErrInvalidStake = errors.New("stake must be positive with at most 2 decimal places")

	// ErrAlreadySettled means the settlement gate found the match
	// already FINISHED; nothing was re-credited.
	ErrAlreadySettled = errors.New("match already settled")
)

// PlaceBetInput carries everything needed to place one bet.
type PlaceBetInput struct {
	UserID  string
	MatchID string
	TeamID  string
	Amount  decimal.Decimal
}

// SettlementSummary reports what one settlement run resolved.
type SettlementSummary struct {
	Resolved int `json:"resolved"`
	Winners  int `json:"winners"`
	Losers   int `json:"losers"`
}
