package bets

import (
	"context"
	"fmt"

	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

func (r *betsRepo) ListByUser(ctx context.Context, userID string) ([]betdom.Bet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, match_id, team_id, amount, odds, potential_payout, status, placed_at
		FROM bets
		WHERE user_id = $1
		ORDER BY placed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bets by user: %w", err)
	}
	defer rows.Close()

	return scanBets(rows)
}
