// Package gateway exposes auctions over WebSocket. Each connection joins
// one auction room; questions from the turn loop are pushed to the client
// and answers are correlated back by request id.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jensholdgaard/fantadraft/internal/auction"
	"github.com/jensholdgaard/fantadraft/internal/remote"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Message is the server-to-client envelope. Exactly one of Ask and Event
// is set.
type Message struct {
	Type  string          `json:"type"`
	Ask   *remote.Ask     `json:"ask,omitempty"`
	Event json.RawMessage `json:"event,omitempty"`
}

// Server upgrades HTTP connections and binds them into auction rooms.
type Server struct {
	manager *auction.Manager
	logger  *slog.Logger
	tracer  trace.Tracer

	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

// NewServer creates a gateway in front of manager.
func NewServer(manager *auction.Manager, logger *slog.Logger, tp trace.TracerProvider) *Server {
	return &Server{
		manager: manager,
		logger:  logger,
		tracer:  tp.Tracer("github.com/jensholdgaard/fantadraft/internal/gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		rooms: make(map[string]*room),
	}
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("GET /auctions", s.listAuctions)
	mux.HandleFunc("GET /auctions/{id}", s.getAuction)
	mux.HandleFunc("GET /auctions/{id}/teams", s.getTeams)
	mux.HandleFunc("GET /auctions/{id}/events", s.getEvents)
	mux.HandleFunc("POST /auctions/{id}/start", s.startAuction)
	mux.HandleFunc("POST /auctions/{id}/stop", s.stopAuction)
	return mux
}

// serveWS joins a client into an auction room. Query parameters select
// the auction, the participant kind and, for team participants, the team.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "Server.serveWS")
	defer span.End()

	q := r.URL.Query()
	auctionID := q.Get("auction")
	a, ok := s.manager.Get(auctionID)
	if !ok {
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}
	span.SetAttributes(attribute.String("auction_id", auctionID))

	name := q.Get("name")
	if name == "" {
		name = "anonymous"
	}
	kind := q.Get("kind")
	if kind == "" {
		kind = "guest"
	}

	var (
		participant auction.Participant
		rp          *remote.Participant
	)
	switch kind {
	case "guest":
		participant = auction.NewGuest(uuid.NewString(), name)
	case "host":
		participant = auction.NewHost(uuid.NewString(), name)
	case "team":
		team := findTeam(a.Teams(), q.Get("team"))
		if team == nil {
			http.Error(w, "team not found", http.StatusNotFound)
			return
		}
		rp = remote.NewParticipant(uuid.NewString(), name, team)
		participant = auction.NewTeamParticipant(rp.ID(), team, rp, rp)
	default:
		http.Error(w, "unknown participant kind", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}

	sess := newSession(conn, rp, s.logger)
	rm := s.room(a)
	rm.join(sess)
	a.Join(ctx, participant)

	s.logger.InfoContext(ctx, "client connected",
		slog.String("auction_id", auctionID),
		slog.String("participant", participant.Label()),
	)

	go sess.writePump(context.Background())
	sess.readPump()

	rm.leave(sess)
	if rp != nil {
		rp.Disconnect()
	}
	s.logger.InfoContext(ctx, "client disconnected",
		slog.String("auction_id", auctionID),
		slog.String("participant", participant.Label()),
	)
}

// room returns the broadcast room for a, creating and subscribing it on
// first use.
func (s *Server) room(a *auction.Auction) *room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rm, ok := s.rooms[a.ID]; ok {
		return rm
	}
	rm := newRoom(a.ID, s.logger)
	a.Bus().Subscribe(rm.broadcastEvent)
	s.rooms[a.ID] = rm
	return rm
}

func findTeam(teams []*roster.Team, raw string) *roster.Team {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	for _, t := range teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}
