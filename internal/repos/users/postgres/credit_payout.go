package users

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	usersdom "github.com/avoronin/matchbook/internal/repos/users"
)

func (r *usersRepo) CreditPayout(tx *sql.Tx, userID string, payout, profit decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance + $2,
		    total_won = total_won + $3
		WHERE id = $1
	`, userID, payout, profit)
	if err != nil {
		return fmt.Errorf("credit payout: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return usersdom.ErrUserNotFound
	}

	return nil
}
