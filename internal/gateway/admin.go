package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jensholdgaard/fantadraft/internal/auction"
	"github.com/jensholdgaard/fantadraft/internal/event"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

type auctionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Finished bool   `json:"finished"`
	Reason   string `json:"reason,omitempty"`
	Turns    int    `json:"turns"`
}

type teamSummary struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Budget    int         `json:"budget"`
	Spent     int         `json:"spent"`
	Remaining int         `json:"remaining"`
	Roster    []teamEntry `json:"roster"`
}

type teamEntry struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Price    int    `json:"price"`
}

func (s *Server) listAuctions(w http.ResponseWriter, r *http.Request) {
	out := make([]auctionSummary, 0)
	for _, a := range s.manager.List() {
		out = append(out, summarize(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAuction(w http.ResponseWriter, r *http.Request) {
	a, ok := s.manager.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summarize(a))
}

func (s *Server) getTeams(w http.ResponseWriter, r *http.Request) {
	a, ok := s.manager.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}
	out := make([]teamSummary, 0, len(a.Teams()))
	for _, t := range a.Teams() {
		out = append(out, summarizeTeam(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// getEvents serves the persisted event trail, optionally filtered with a
// ?type= query.
func (s *Server) getEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.manager.Get(id); !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}
	evs, err := s.manager.AuctionEvents(r.Context(), id, event.Type(r.URL.Query().Get("type")))
	if err != nil {
		http.Error(w, "loading events failed", http.StatusInternalServerError)
		return
	}
	if evs == nil {
		evs = []event.Event{}
	}
	writeJSON(w, http.StatusOK, evs)
}

// startAuction kicks off the turn loop in the background. The loop ends on
// its own once the pool or the callers run out.
func (s *Server) startAuction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, ok := s.manager.Get(id)
	if !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}

	// The run outlives the request; it is bound to the server's lifetime
	// instead of the caller's.
	go func() {
		reason, err := s.manager.RunAuction(context.WithoutCancel(r.Context()), id)
		if err != nil {
			s.logger.Error("auction run failed",
				slog.String("auction_id", id),
				slog.Any("error", err),
			)
			return
		}
		s.logger.Info("auction run completed",
			slog.String("auction_id", id),
			slog.String("reason", string(reason)),
		)
	}()

	writeJSON(w, http.StatusAccepted, summarize(a))
}

func (s *Server) stopAuction(w http.ResponseWriter, r *http.Request) {
	a, ok := s.manager.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}
	a.Stop()
	writeJSON(w, http.StatusAccepted, summarize(a))
}

func summarize(a *auction.Auction) auctionSummary {
	finished, reason := a.Finished()
	return auctionSummary{
		ID:       a.ID,
		Name:     a.Name,
		Finished: finished,
		Reason:   string(reason),
		Turns:    len(a.Turns()),
	}
}

func summarizeTeam(t *roster.Team) teamSummary {
	entries := make([]teamEntry, 0, len(t.Roster))
	for _, e := range t.Roster {
		entries = append(entries, teamEntry{
			PlayerID: e.Player.ID,
			Name:     e.Player.Name,
			Role:     string(e.Player.Role),
			Price:    e.Price,
		})
	}
	return teamSummary{
		ID:        t.ID,
		Name:      t.Name,
		Budget:    t.Budget,
		Spent:     t.Spent,
		Remaining: t.Remaining(),
		Roster:    entries,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
