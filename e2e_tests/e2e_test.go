// Package e2etests exercises a running API instance end to end. Start
// the stack (postgres + migrator with dev seed + api on :8080) before
// running; the tests use the seeded demo users and matches.
package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const (
	baseURL   = "http://localhost:8080"
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second

	// Fixed ids from cmd/migrator/test_data.
	seedUser1  = "00000000-0000-0000-0000-000000000001"
	seedUser2  = "00000000-0000-0000-0000-000000000002"
	seedMatch2 = "20000000-0000-0000-0000-000000000002"
	seedTeam3  = "10000000-0000-0000-0000-000000000003"
	seedTeam4  = "10000000-0000-0000-0000-000000000004"
)

var httpClient = &http.Client{Timeout: timeout}

func TestE2E_WagerFlow(t *testing.T) {
	waitUntilReady(t)

	var betID string

	t.Run("place_bet_on_seeded_match", func(t *testing.T) {
		code, body := postJSON(t, "/bets", map[string]string{
			"userId":  seedUser1,
			"matchId": seedMatch2,
			"teamId":  seedTeam3,
			"amount":  "100.00",
		})
		if code != http.StatusCreated {
			t.Fatalf("place bet: want 201, got %d (%s)", code, body)
		}

		var bet struct {
			ID              string `json:"id"`
			Odds            string `json:"odds"`
			PotentialPayout string `json:"potentialPayout"`
			Status          string `json:"status"`
		}
		if err := json.Unmarshal([]byte(body), &bet); err != nil {
			t.Fatalf("decode bet: %v", err)
		}

		betID = bet.ID

		// Seeded odds for team3 are 2.10.
		if bet.PotentialPayout != "210.00" {
			t.Fatalf("potential payout: want 210.00, got %s", bet.PotentialPayout)
		}
		if bet.Status != "PENDING" {
			t.Fatalf("status: want PENDING, got %s", bet.Status)
		}
	})

	t.Run("bet_on_foreign_team_rejected", func(t *testing.T) {
		code, body := postJSON(t, "/bets", map[string]string{
			"userId":  seedUser2,
			"matchId": seedMatch2,
			"teamId":  seedUser2, // a user id, not a team of this match
			"amount":  "10.00",
		})
		if code != http.StatusBadRequest {
			t.Fatalf("foreign team: want 400, got %d (%s)", code, body)
		}
	})

	t.Run("settle_credits_winner", func(t *testing.T) {
		code, body := postJSON(t, "/matches/"+seedMatch2+"/settle", map[string]string{
			"winnerTeamId": seedTeam3,
		})
		if code != http.StatusOK {
			t.Fatalf("settle: want 200, got %d (%s)", code, body)
		}

		var sum struct {
			Resolved int `json:"resolved"`
			Winners  int `json:"winners"`
		}
		if err := json.Unmarshal([]byte(body), &sum); err != nil {
			t.Fatalf("decode summary: %v", err)
		}

		if sum.Winners < 1 {
			t.Fatalf("winners: want >= 1, got %d", sum.Winners)
		}

		status := betStatus(t, seedUser1, betID)
		if status != "WON" {
			t.Fatalf("bet status after settle: want WON, got %s", status)
		}
	})

	t.Run("second_settle_conflicts", func(t *testing.T) {
		code, body := postJSON(t, "/matches/"+seedMatch2+"/settle", map[string]string{
			"winnerTeamId": seedTeam4,
		})
		if code != http.StatusConflict {
			t.Fatalf("double settle: want 409, got %d (%s)", code, body)
		}
	})

	t.Run("bets_on_finished_match_rejected", func(t *testing.T) {
		code, body := postJSON(t, "/bets", map[string]string{
			"userId":  seedUser2,
			"matchId": seedMatch2,
			"teamId":  seedTeam3,
			"amount":  "10.00",
		})
		if code != http.StatusConflict {
			t.Fatalf("bet on finished match: want 409, got %d (%s)", code, body)
		}
	})
}

func waitUntilReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(waitReady)

	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		time.Sleep(500 * time.Millisecond)
	}

	t.Fatalf("api not ready after %s", waitReady)
}

func postJSON(t *testing.T, path string, payload any) (int, string) {
	t.Helper()

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}

	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return resp.StatusCode, string(body)
}

func betStatus(t *testing.T, userID, betID string) string {
	t.Helper()

	resp, err := httpClient.Get(fmt.Sprintf("%s/users/%s/bets", baseURL, userID))
	if err != nil {
		t.Fatalf("GET bets: %v", err)
	}
	defer resp.Body.Close()

	var list []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode bets: %v", err)
	}

	for _, b := range list {
		if b.ID == betID {
			return b.Status
		}
	}

	t.Fatalf("bet %s not found for user %s", betID, userID)

	return ""
}
