package wager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avoronin/matchbook/internal/infra/pgutils"
	"github.com/avoronin/matchbook/internal/metrics"
	"github.com/avoronin/matchbook/internal/producer"
	"github.com/avoronin/matchbook/internal/repos/matches"
)

// SettleMatch finishes the match and resolves every pending bet on it
// in one transaction. The guarded SCHEDULED -> FINISHED update is the
// idempotency gate: concurrent or retried calls that lose the race get
// ErrAlreadySettled and never re-credit a winner. Winner credits derive
// solely from the potential payout frozen at placement.
func (s *Service) SettleMatch(ctx context.Context, matchID, winnerTeamID string) (SettlementSummary, error) {
	started := time.Now()

	sum, err := s.settleMatch(ctx, matchID, winnerTeamID)
	if err != nil {
		metrics.RecordSettlement(settleResultLabel(err), 0, started)

		return SettlementSummary{}, err
	}

	metrics.RecordSettlement("success", sum.Resolved, started)

	if s.pub != nil {
		perr := s.pub.PublishMatchSettled(ctx, producer.MatchSettled{
			MatchID:      matchID,
			WinnerTeamID: winnerTeamID,
			Resolved:     sum.Resolved,
			Winners:      sum.Winners,
			Losers:       sum.Losers,
		})
		if perr != nil {
			slog.Warn("publish match settled failed", "match_id", matchID, "error", perr)
		}
	}

	return sum, nil
}

func (s *Service) settleMatch(ctx context.Context, matchID, winnerTeamID string) (SettlementSummary, error) {
	m, err := s.matches.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, matches.ErrMatchNotFound) {
			return SettlementSummary{}, matches.ErrMatchNotFound
		}

		return SettlementSummary{}, fmt.Errorf("load match: %w", err)
	}

	if !m.HasTeam(winnerTeamID) {
		return SettlementSummary{}, ErrInvalidSelection
	}

	var sum SettlementSummary

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		affected, err := s.matches.Finish(tx, matchID, winnerTeamID)
		if err != nil {
			return fmt.Errorf("finish match: %w", err)
		}

		if affected == 0 {
			// Lost the gate: someone else settled between our read and
			// this update.
			return ErrAlreadySettled
		}

		pending, err := s.bets.ListPendingForUpdate(tx, matchID)
		if err != nil {
			return fmt.Errorf("snapshot pending bets: %w", err)
		}

		for i := range pending {
			b := &pending[i]
			if b.TeamID != winnerTeamID {
				continue
			}

			// Net profit feeds total_won; the full frozen payout goes
			// back to the balance.
			profit := b.PotentialPayout.Sub(b.Amount)

			err = s.users.CreditPayout(tx, b.UserID, b.PotentialPayout, profit)
			if err != nil {
				return fmt.Errorf("credit payout for bet %s: %w", b.ID, err)
			}
		}

		won, err := s.bets.SettleWinners(tx, matchID, winnerTeamID)
		if err != nil {
			return fmt.Errorf("flip winners: %w", err)
		}

		lost, err := s.bets.SettleLosers(tx, matchID, winnerTeamID)
		if err != nil {
			return fmt.Errorf("flip losers: %w", err)
		}

		sum = SettlementSummary{
			Resolved: int(won + lost),
			Winners:  int(won),
			Losers:   int(lost),
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			return SettlementSummary{}, ErrAlreadySettled
		}

		return SettlementSummary{}, fmt.Errorf("settle match: %w", err)
	}

	slog.Info("match settled",
		"match_id", matchID,
		"winner_team_id", winnerTeamID,
		"resolved", sum.Resolved,
		"winners", sum.Winners,
		"losers", sum.Losers,
	)

	return sum, nil
}

func settleResultLabel(err error) string {
	switch {
	case errors.Is(err, matches.ErrMatchNotFound):
		return "match_not_found"
	case errors.Is(err, ErrAlreadySettled):
		return "already_settled"
	case errors.Is(err, ErrInvalidSelection):
		return "invalid_selection"
	default:
		return "error"
	}
}
