package bets

import (
	"database/sql"
	"fmt"

	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

func (r *betsRepo) ListPendingForUpdate(tx *sql.Tx, matchID string) ([]betdom.Bet, error) {
	rows, err := tx.Query(`
		SELECT id, user_id, match_id, team_id, amount, odds, potential_payout, status, placed_at
		FROM bets
		WHERE match_id = $1
		  AND status = $2
		ORDER BY placed_at
		FOR UPDATE
	`, matchID, betdom.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending bets: %w", err)
	}
	defer rows.Close()

	return scanBets(rows)
}

func scanBets(rows *sql.Rows) ([]betdom.Bet, error) {
	var out []betdom.Bet

	for rows.Next() {
		var b betdom.Bet

		err := rows.Scan(
			&b.ID, &b.UserID, &b.MatchID, &b.TeamID,
			&b.Amount, &b.Odds, &b.PotentialPayout,
			&b.Status, &b.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}

	return out, nil
}
