package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	matchdom "github.com/avoronin/matchbook/internal/repos/matches"
)

func (r *matchesRepo) Get(ctx context.Context, matchID string) (*matchdom.Match, error) {
	var m matchdom.Match

	err := r.db.QueryRowContext(ctx, `
		SELECT id, team1_id, team2_id, odds_team1, odds_team2, status, winner_id, starts_at
		FROM matches
		WHERE id = $1
	`, matchID).Scan(
		&m.ID, &m.Team1ID, &m.Team2ID,
		&m.OddsTeam1, &m.OddsTeam2,
		&m.Status, &m.WinnerID, &m.StartsAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, matchdom.ErrMatchNotFound
		}

		return nil, fmt.Errorf("get match: %w", err)
	}

	return &m, nil
}

func (r *matchesRepo) List(ctx context.Context) ([]matchdom.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team1_id, team2_id, odds_team1, odds_team2, status, winner_id, starts_at
		FROM matches
		ORDER BY starts_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []matchdom.Match

	for rows.Next() {
		var m matchdom.Match

		err = rows.Scan(
			&m.ID, &m.Team1ID, &m.Team2ID,
			&m.OddsTeam1, &m.OddsTeam2,
			&m.Status, &m.WinnerID, &m.StartsAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}

		out = append(out, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	return out, nil
}
