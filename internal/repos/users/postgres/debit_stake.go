package users

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	usersdom "github.com/avoronin/matchbook/internal/repos/users"
)

func (r *usersRepo) DebitStake(tx *sql.Tx, userID string, amount decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance - $2,
		    total_staked = total_staked + $2
		WHERE id = $1
		  AND balance >= $2
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("debit stake: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return usersdom.ErrInsufficientBalance
	}

	return nil
}
