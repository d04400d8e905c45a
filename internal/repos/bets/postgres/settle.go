package bets

import (
	"database/sql"
	"fmt"

	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

// Both bulk flips repeat status = PENDING in the predicate, so a bet
// that already left PENDING can never be flipped again, even if a
// retried settlement raced with the snapshot.

func (r *betsRepo) SettleWinners(tx *sql.Tx, matchID, winnerTeamID string) (int64, error) {
	res, err := tx.Exec(`
		UPDATE bets
		SET status = $3
		WHERE match_id = $1
		  AND status = $4
		  AND team_id = $2
	`, matchID, winnerTeamID, betdom.StatusWon, betdom.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("settle winners: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}

func (r *betsRepo) SettleLosers(tx *sql.Tx, matchID, winnerTeamID string) (int64, error) {
	res, err := tx.Exec(`
		UPDATE bets
		SET status = $3
		WHERE match_id = $1
		  AND status = $4
		  AND team_id <> $2
	`, matchID, winnerTeamID, betdom.StatusLost, betdom.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("settle losers: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
