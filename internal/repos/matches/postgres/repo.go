package matches

import (
	"database/sql"

	matchdom "github.com/avoronin/matchbook/internal/repos/matches"
)

var _ matchdom.Matches = (*matchesRepo)(nil)

type matchesRepo struct{ db *sql.DB }

func New(db *sql.DB) *matchesRepo {
	return &matchesRepo{db: db}
}
