package matches

import (
	"database/sql"
	"fmt"

	matchdom "github.com/avoronin/matchbook/internal/repos/matches"
)

// Finish is the settlement idempotency gate: the status predicate is
// checked by the database at write time, so exactly one caller ever
// sees a non-zero row count for a given match.
func (r *matchesRepo) Finish(tx *sql.Tx, matchID, winnerTeamID string) (int64, error) {
	res, err := tx.Exec(`
		UPDATE matches
		SET status = $3,
		    winner_id = $2
		WHERE id = $1
		  AND status = $4
	`, matchID, winnerTeamID, matchdom.StatusFinished, matchdom.StatusScheduled)
	if err != nil {
		return 0, fmt.Errorf("finish match: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
