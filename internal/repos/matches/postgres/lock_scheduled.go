package matches

import (
	"database/sql"
	"errors"
	"fmt"

	matchdom "github.com/avoronin/matchbook/internal/repos/matches"
)

// LockScheduled takes a share lock on the match row while re-checking
// it is still SCHEDULED. The lock conflicts with Finish's row update,
// so a placement transaction either commits before settlement snapshots
// pending bets, or observes FINISHED and aborts. A bet can never land
// on a match whose settlement already ran.
func (r *matchesRepo) LockScheduled(tx *sql.Tx, matchID string) error {
	var one int

	err := tx.QueryRow(`
		SELECT 1
		FROM matches
		WHERE id = $1
		  AND status = $2
		FOR SHARE
	`, matchID, matchdom.StatusScheduled).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchdom.ErrMatchNotOpen
		}

		return fmt.Errorf("lock scheduled match: %w", err)
	}

	return nil
}
