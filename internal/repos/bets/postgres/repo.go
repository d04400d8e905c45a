package bets

import (
	"database/sql"

	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

var _ betdom.Bets = (*betsRepo)(nil)

type betsRepo struct{ db *sql.DB }

func New(db *sql.DB) *betsRepo {
	return &betsRepo{db: db}
}
