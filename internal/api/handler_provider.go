package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avoronin/matchbook/internal/repos/bets"
	"github.com/avoronin/matchbook/internal/repos/matches"
	"github.com/avoronin/matchbook/internal/repos/users"
	"github.com/avoronin/matchbook/internal/services/wager"
)

// MatchCacheInvalidator drops cached match entries after settlement.
// Implemented by rediscache.Cache; nil means no cache is wired.
type MatchCacheInvalidator interface {
	Invalidate(ctx context.Context, matchID string)
}

// HandlerProvider maps the wager engine onto HTTP.
type HandlerProvider struct {
	svc        *wager.Service
	matches    matches.Reader
	invalidate MatchCacheInvalidator
}

// NewHandler builds the handler set. matchReader may be the raw repo or
// a cached wrapper; inv may be nil.
func NewHandler(svc *wager.Service, matchReader matches.Reader, inv MatchCacheInvalidator) *HandlerProvider {
	return &HandlerProvider{svc: svc, matches: matchReader, invalidate: inv}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- Wire shapes ---

type placeBetRequest struct {
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`
	TeamID  string `json:"teamId"`
	Amount  string `json:"amount"`
}

type betResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	MatchID         string    `json:"matchId"`
	TeamID          string    `json:"teamId"`
	Amount          string    `json:"amount"`
	Odds            string    `json:"odds"`
	PotentialPayout string    `json:"potentialPayout"`
	Status          string    `json:"status"`
	PlacedAt        time.Time `json:"placedAt"`
}

func toBetResponse(b *bets.Bet) betResponse {
	return betResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		MatchID:         b.MatchID,
		TeamID:          b.TeamID,
		Amount:          b.Amount.StringFixed(2),
		Odds:            b.Odds.String(),
		PotentialPayout: b.PotentialPayout.StringFixed(2),
		Status:          string(b.Status),
		PlacedAt:        b.PlacedAt,
	}
}

type matchResponse struct {
	ID        string    `json:"id"`
	Team1ID   string    `json:"team1Id"`
	Team2ID   string    `json:"team2Id"`
	OddsTeam1 string    `json:"oddsTeam1"`
	OddsTeam2 string    `json:"oddsTeam2"`
	Status    string    `json:"status"`
	WinnerID  *string   `json:"winnerId"`
	StartsAt  time.Time `json:"startsAt"`
}

func toMatchResponse(m *matches.Match) matchResponse {
	return matchResponse{
		ID:        m.ID,
		Team1ID:   m.Team1ID,
		Team2ID:   m.Team2ID,
		OddsTeam1: m.OddsTeam1.String(),
		OddsTeam2: m.OddsTeam2.String(),
		Status:    string(m.Status),
		WinnerID:  m.WinnerID,
		StartsAt:  m.StartsAt,
	}
}

// --- Handlers ---

// PlaceBetHandler handles POST /bets
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req placeBetRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.UserID == "" || req.MatchID == "" || req.TeamID == "" {
		writeError(w, http.StatusBadRequest, "userId, matchId and teamId are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	b, err := h.svc.PlaceBet(r.Context(), wager.PlaceBetInput{
		UserID:  req.UserID,
		MatchID: req.MatchID,
		TeamID:  req.TeamID,
		Amount:  amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, wager.ErrInvalidStake):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, wager.ErrInvalidSelection):
			writeError(w, http.StatusBadRequest, "team is not part of the match")
		case errors.Is(err, wager.ErrMatchUnavailable):
			writeError(w, http.StatusConflict, "match is not available for betting")
		case errors.Is(err, users.ErrInsufficientBalance):
			writeError(w, http.StatusConflict, "insufficient balance")
		case errors.Is(err, users.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	writeJSON(w, http.StatusCreated, toBetResponse(b))
}

// SettleMatchHandler handles POST /matches/{matchId}/settle
func (h *HandlerProvider) SettleMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req struct {
		WinnerTeamID string `json:"winnerTeamId"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.WinnerTeamID == "" {
		writeError(w, http.StatusBadRequest, "winnerTeamId required")
		return
	}

	sum, err := h.svc.SettleMatch(r.Context(), matchID, req.WinnerTeamID)
	if err != nil {
		switch {
		case errors.Is(err, matches.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "match not found")
		case errors.Is(err, wager.ErrAlreadySettled):
			writeError(w, http.StatusConflict, "match already settled")
		case errors.Is(err, wager.ErrInvalidSelection):
			writeError(w, http.StatusBadRequest, "winner team is not part of the match")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	if h.invalidate != nil {
		h.invalidate.Invalidate(r.Context(), matchID)
	}

	writeJSON(w, http.StatusOK, sum)
}

// ListUserBetsHandler handles GET /users/{userId}/bets
func (h *HandlerProvider) ListUserBetsHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	list, err := h.svc.ListBetsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]betResponse, 0, len(list))
	for i := range list {
		out = append(out, toBetResponse(&list[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetBalanceHandler handles GET /users/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":      u.ID,
		"balance":     u.Balance.StringFixed(2),
		"totalStaked": u.TotalStaked.StringFixed(2),
		"totalWon":    u.TotalWon.StringFixed(2),
	})
}

// ListMatchesHandler handles GET /matches
func (h *HandlerProvider) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.matches.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]matchResponse, 0, len(list))
	for i := range list {
		out = append(out, toMatchResponse(&list[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetMatchHandler handles GET /matches/{matchId}
func (h *HandlerProvider) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.Get(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		if errors.Is(err, matches.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(m))
}
