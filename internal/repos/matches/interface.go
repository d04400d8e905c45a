package matches

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchNotOpen  = errors.New("match not open for betting")
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusFinished  Status = "FINISHED"
)

// Match is a two-sided contest with a fixed price per side. WinnerID is
// nil until the match is finished, then one of the two team ids.
type Match struct {
	ID        string
	Team1ID   string
	Team2ID   string
	OddsTeam1 decimal.Decimal
	OddsTeam2 decimal.Decimal
	Status    Status
	WinnerID  *string
	StartsAt  time.Time
}

// HasTeam reports whether teamID is one of the match's two sides.
func (m *Match) HasTeam(teamID string) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

// OddsFor returns the fixed price for teamID. The caller must have
// checked HasTeam first.
func (m *Match) OddsFor(teamID string) decimal.Decimal {
	if teamID == m.Team1ID {
		return m.OddsTeam1
	}

	return m.OddsTeam2
}

// Reader is the display read path (HTTP GET endpoints, caches).
type Reader interface {
	Get(ctx context.Context, matchID string) (*Match, error)
	List(ctx context.Context) ([]Match, error)
}

type Matches interface {
	Reader

	// LockScheduled re-checks inside a transaction that the match is
	// still open, holding a share lock on its row until commit. Returns
	// ErrMatchNotOpen when the match is missing or already FINISHED.
	LockScheduled(tx *sql.Tx, matchID string) error

	// Finish performs the one-shot SCHEDULED -> FINISHED transition,
	// setting the winner in the same statement. It returns the number
	// of affected rows: zero means the match is missing or already
	// finished, and the caller lost the settlement race.
	Finish(tx *sql.Tx, matchID, winnerTeamID string) (int64, error)
}
