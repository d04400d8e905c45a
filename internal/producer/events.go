// Package producer publishes wager events to Kafka. Events are
// advisory notifications for downstream consumers (risk, CRM, feeds);
// the Postgres ledger remains the source of truth.
package producer

// BetPlaced is emitted after a placement transaction commits.
type BetPlaced struct {
	BetID           string `json:"bet_id"`
	UserID          string `json:"user_id"`
	MatchID         string `json:"match_id"`
	TeamID          string `json:"team_id"`
	Amount          string `json:"amount"`
	Odds            string `json:"odds"`
	PotentialPayout string `json:"potential_payout"`
	TsUnixMs        int64  `json:"ts_unix_ms"`
}

// MatchSettled is emitted after a settlement transaction commits.
type MatchSettled struct {
	MatchID      string `json:"match_id"`
	WinnerTeamID string `json:"winner_team_id"`
	Resolved     int    `json:"resolved"`
	Winners      int    `json:"winners"`
	Losers       int    `json:"losers"`
	TsUnixMs     int64  `json:"ts_unix_ms"`
}
