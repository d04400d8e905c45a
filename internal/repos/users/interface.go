package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// User is the ledger's view of an account: identity plus balance and
// the monotonic staked/won aggregates. Identity fields are owned by the
// account subsystem and never written here.
type User struct {
	ID          string
	Balance     decimal.Decimal
	TotalStaked decimal.Decimal
	TotalWon    decimal.Decimal
}

type Users interface {
	// Get is the read path for eligibility display. Mutations never go
	// through it.
	Get(ctx context.Context, userID string) (*User, error)

	// DebitStake decrements balance by amount and increments
	// total_staked in one guarded statement. The predicate
	// balance >= amount is checked at write time; zero affected rows
	// means ErrInsufficientBalance (or no such user).
	DebitStake(tx *sql.Tx, userID string, amount decimal.Decimal) error

	// CreditPayout increments balance by payout and total_won by
	// profit in one statement. Zero affected rows means ErrUserNotFound.
	CreditPayout(tx *sql.Tx, userID string, payout, profit decimal.Decimal) error
}
