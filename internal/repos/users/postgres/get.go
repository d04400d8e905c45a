package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	usersdom "github.com/avoronin/matchbook/internal/repos/users"
)

func (r *usersRepo) Get(ctx context.Context, userID string) (*usersdom.User, error) {
	var u usersdom.User

	err := r.db.QueryRowContext(ctx, `
		SELECT id, balance, total_staked, total_won
		FROM users
		WHERE id = $1
	`, userID).Scan(&u.ID, &u.Balance, &u.TotalStaked, &u.TotalWon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usersdom.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}
