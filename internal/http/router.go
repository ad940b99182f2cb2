package http

import (
	nethttp "net/http"

	"league-data-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/leagues", handler.Leagues)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/today", handler.TodayGames)
	mux.HandleFunc("/games/live", handler.LiveGames)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.TeamStats)
	mux.HandleFunc("/standings", handler.Standings)
	mux.HandleFunc("/odds", handler.Odds)
	return mux
}
