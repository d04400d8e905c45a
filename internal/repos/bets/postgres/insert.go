package bets

import (
	"database/sql"
	"fmt"

	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

func (r *betsRepo) Insert(tx *sql.Tx, b *betdom.Bet) error {
	_, err := tx.Exec(`
		INSERT INTO bets (id, user_id, match_id, team_id, amount, odds, potential_payout, status, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, b.ID, b.UserID, b.MatchID, b.TeamID, b.Amount, b.Odds, b.PotentialPayout, b.Status, b.PlacedAt)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}

	return nil
}
