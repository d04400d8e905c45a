package wager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avoronin/matchbook/internal/infra/pgutils"
	"github.com/avoronin/matchbook/internal/metrics"
	"github.com/avoronin/matchbook/internal/producer"
	"github.com/avoronin/matchbook/internal/repos/bets"
	"github.com/avoronin/matchbook/internal/repos/matches"
	"github.com/avoronin/matchbook/internal/repos/users"
)

// moneyPlaces is the ledger's fixed-point precision. The payout is
// rounded half-up to this scale exactly once, at placement.
const moneyPlaces = 2

// PlaceBet validates the selection, freezes the odds in effect for the
// chosen team, and in one transaction debits the stake and inserts the
// PENDING bet. The balance debit is a guarded update, so two concurrent
// bets from one user can never drive the balance negative.
func (s *Service) PlaceBet(ctx context.Context, in PlaceBetInput) (*bets.Bet, error) {
	started := time.Now()

	b, err := s.placeBet(ctx, in)
	if err != nil {
		metrics.RecordBet(betResultLabel(err), started)

		return nil, err
	}

	metrics.RecordBet("success", started)

	if s.pub != nil {
		perr := s.pub.PublishBetPlaced(ctx, producer.BetPlaced{
			BetID:           b.ID,
			UserID:          b.UserID,
			MatchID:         b.MatchID,
			TeamID:          b.TeamID,
			Amount:          b.Amount.StringFixed(moneyPlaces),
			Odds:            b.Odds.String(),
			PotentialPayout: b.PotentialPayout.StringFixed(moneyPlaces),
		})
		if perr != nil {
			slog.Warn("publish bet placed failed", "bet_id", b.ID, "error", perr)
		}
	}

	return b, nil
}

func (s *Service) placeBet(ctx context.Context, in PlaceBetInput) (*bets.Bet, error) {
	// All validation happens before any mutation is attempted.
	if !in.Amount.IsPositive() || !in.Amount.Equal(in.Amount.Round(moneyPlaces)) {
		return nil, ErrInvalidStake
	}

	m, err := s.matches.Get(ctx, in.MatchID)
	if err != nil {
		if errors.Is(err, matches.ErrMatchNotFound) {
			return nil, ErrMatchUnavailable
		}

		return nil, fmt.Errorf("load match: %w", err)
	}

	if m.Status != matches.StatusScheduled {
		return nil, ErrMatchUnavailable
	}

	if !m.HasTeam(in.TeamID) {
		return nil, ErrInvalidSelection
	}

	odds := m.OddsFor(in.TeamID)

	b := &bets.Bet{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		MatchID:         in.MatchID,
		TeamID:          in.TeamID,
		Amount:          in.Amount,
		Odds:            odds,
		PotentialPayout: in.Amount.Mul(odds).Round(moneyPlaces),
		Status:          bets.StatusPending,
		PlacedAt:        time.Now().UTC(),
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Re-check under lock: the match must still be open when the
		// stake lands, or a settlement racing with us could strand the
		// bet in PENDING forever.
		err := s.matches.LockScheduled(tx, in.MatchID)
		if err != nil {
			if errors.Is(err, matches.ErrMatchNotOpen) {
				return ErrMatchUnavailable
			}

			return fmt.Errorf("lock match: %w", err)
		}

		err = s.users.DebitStake(tx, in.UserID, in.Amount)
		if err != nil {
			return fmt.Errorf("debit stake: %w", err)
		}

		err = s.bets.Insert(tx, b)
		if err != nil {
			return fmt.Errorf("insert bet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}

	slog.Info("bet placed",
		"bet_id", b.ID,
		"user_id", b.UserID,
		"match_id", b.MatchID,
		"team_id", b.TeamID,
		"amount", b.Amount.StringFixed(moneyPlaces),
		"odds", b.Odds.String(),
	)

	return b, nil
}

func betResultLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidStake):
		return "invalid_stake"
	case errors.Is(err, ErrMatchUnavailable):
		return "match_unavailable"
	case errors.Is(err, ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, users.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return "error"
	}
}
