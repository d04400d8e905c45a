package users

import (
	"database/sql"

	usersdom "github.com/avoronin/matchbook/internal/repos/users"
)

var _ usersdom.Users = (*usersRepo)(nil)

type usersRepo struct{ db *sql.DB }

func New(db *sql.DB) *usersRepo {
	return &usersRepo{db: db}
}
