package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avoronin/matchbook/internal/repos/matches"
	"github.com/avoronin/matchbook/internal/services/wager"
)

// NewRouter registers all API endpoints on a chi router.
func NewRouter(svc *wager.Service, matchReader matches.Reader, inv MatchCacheInvalidator) http.Handler {
	h := NewHandler(svc, matchReader, inv)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/bets", h.PlaceBetHandler)
	r.Get("/users/{userId}/bets", h.ListUserBetsHandler)
	r.Get("/users/{userId}/balance", h.GetBalanceHandler)

	r.Get("/matches", h.ListMatchesHandler)
	r.Get("/matches/{matchId}", h.GetMatchHandler)
	r.Post("/matches/{matchId}/settle", h.SettleMatchHandler)

	return r
}
