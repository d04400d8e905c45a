package bets

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronin/matchbook/internal/infra/pgtestutil"
	betdom "github.com/avoronin/matchbook/internal/repos/bets"
)

type fixture struct {
	userID  string
	matchID string
	team1   string
	team2   string
}

func seedFixture(t *testing.T, db *sql.DB) fixture {
	t.Helper()

	f := fixture{
		userID:  uuid.NewString(),
		matchID: uuid.NewString(),
		team1:   uuid.NewString(),
		team2:   uuid.NewString(),
	}

	_, err := db.Exec(`INSERT INTO users (id, balance) VALUES ($1, 1000.00)`, f.userID)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	for _, team := range []string{f.team1, f.team2} {
		_, err = db.Exec(`INSERT INTO teams (id, name) VALUES ($1, $2)`, team, "team "+team[:8])
		if err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}

	_, err = db.Exec(`
		INSERT INTO matches (id, team1_id, team2_id, odds_team1, odds_team2)
		VALUES ($1, $2, $3, 1.50, 2.60)
	`, f.matchID, f.team1, f.team2)
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}

	return f
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}

	return d
}

func insertBet(t *testing.T, db *sql.DB, repo *betsRepo, f fixture, teamID, amount, odds string, status betdom.Status) string {
	t.Helper()

	a := mustDec(t, amount)
	o := mustDec(t, odds)

	b := &betdom.Bet{
		ID:              uuid.NewString(),
		UserID:          f.userID,
		MatchID:         f.matchID,
		TeamID:          teamID,
		Amount:          a,
		Odds:            o,
		PotentialPayout: a.Mul(o).Round(2),
		Status:          status,
		PlacedAt:        time.Now().UTC(),
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = repo.Insert(tx, b); err != nil {
		t.Fatalf("insert bet: %v", err)
	}
	if err = tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	return b.ID
}

func TestBets_InsertAndListPending(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	f := seedFixture(t, db)

	insertBet(t, db, repo, f, f.team1, "100.00", "1.50", betdom.StatusPending)
	insertBet(t, db, repo, f, f.team2, "40.00", "2.60", betdom.StatusPending)
	insertBet(t, db, repo, f, f.team1, "10.00", "1.50", betdom.StatusWon) // already settled, must be excluded

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	pending, err := repo.ListPendingForUpdate(tx, f.matchID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("pending bets: want 2, got %d", len(pending))
	}

	first := pending[0]
	if first.Status != betdom.StatusPending {
		t.Errorf("status: want PENDING, got %s", first.Status)
	}
	if !first.PotentialPayout.Equal(mustDec(t, "150.00")) {
		t.Errorf("potential payout: want 150.00, got %s", first.PotentialPayout)
	}
}

func TestBets_SettleFlips(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	f := seedFixture(t, db)

	winA := insertBet(t, db, repo, f, f.team1, "100.00", "1.50", betdom.StatusPending)
	winB := insertBet(t, db, repo, f, f.team1, "20.00", "1.50", betdom.StatusPending)
	lose := insertBet(t, db, repo, f, f.team2, "40.00", "2.60", betdom.StatusPending)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	won, err := repo.SettleWinners(tx, f.matchID, f.team1)
	if err != nil {
		t.Fatalf("settle winners: %v", err)
	}

	lost, err := repo.SettleLosers(tx, f.matchID, f.team1)
	if err != nil {
		t.Fatalf("settle losers: %v", err)
	}

	if err = tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if won != 2 || lost != 1 {
		t.Fatalf("flips: want 2 won / 1 lost, got %d / %d", won, lost)
	}

	wantStatus := map[string]betdom.Status{
		winA: betdom.StatusWon,
		winB: betdom.StatusWon,
		lose: betdom.StatusLost,
	}

	for id, want := range wantStatus {
		var got betdom.Status

		err = db.QueryRow(`SELECT status FROM bets WHERE id = $1`, id).Scan(&got)
		if err != nil {
			t.Fatalf("read bet status: %v", err)
		}

		if got != want {
			t.Errorf("bet %s: want %s, got %s", id, want, got)
		}
	}
}

// Flips re-check PENDING at write time: a second run over an already
// settled match touches nothing.
func TestBets_SettleFlips_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	f := seedFixture(t, db)

	insertBet(t, db, repo, f, f.team1, "100.00", "1.50", betdom.StatusPending)
	insertBet(t, db, repo, f, f.team2, "40.00", "2.60", betdom.StatusPending)

	runFlips := func() (int64, int64) {
		tx, err := db.BeginTx(context.Background(), nil)
		if err != nil {
			t.Fatalf("begin tx: %v", err)
		}
		defer func() { _ = tx.Rollback() }()

		won, err := repo.SettleWinners(tx, f.matchID, f.team1)
		if err != nil {
			t.Fatalf("settle winners: %v", err)
		}

		lost, err := repo.SettleLosers(tx, f.matchID, f.team1)
		if err != nil {
			t.Fatalf("settle losers: %v", err)
		}

		if err = tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}

		return won, lost
	}

	won, lost := runFlips()
	if won != 1 || lost != 1 {
		t.Fatalf("first run: want 1/1, got %d/%d", won, lost)
	}

	won, lost = runFlips()
	if won != 0 || lost != 0 {
		t.Fatalf("second run: want 0/0, got %d/%d", won, lost)
	}
}

func TestBets_ListByUser_NewestFirst(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	f := seedFixture(t, db)

	oldID := insertBet(t, db, repo, f, f.team1, "10.00", "1.50", betdom.StatusPending)

	_, err := db.Exec(`UPDATE bets SET placed_at = placed_at - interval '1 hour' WHERE id = $1`, oldID)
	if err != nil {
		t.Fatalf("age bet: %v", err)
	}

	newID := insertBet(t, db, repo, f, f.team2, "20.00", "2.60", betdom.StatusPending)

	list, err := repo.ListByUser(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("list size: want 2, got %d", len(list))
	}

	if list[0].ID != newID || list[1].ID != oldID {
		t.Fatalf("order: want [%s %s], got [%s %s]", newID, oldID, list[0].ID, list[1].ID)
	}
}
