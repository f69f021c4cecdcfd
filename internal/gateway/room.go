package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jensholdgaard/fantadraft/internal/event"
	"github.com/jensholdgaard/fantadraft/internal/remote"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// room fans auction events out to every connected session.
type room struct {
	auctionID string
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[*session]struct{}
}

func newRoom(auctionID string, logger *slog.Logger) *room {
	return &room{
		auctionID: auctionID,
		logger:    logger,
		sessions:  make(map[*session]struct{}),
	}
}

func (r *room) join(s *session) {
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
}

func (r *room) leave(s *session) {
	r.mu.Lock()
	delete(r.sessions, s)
	r.mu.Unlock()
	s.close()
}

// broadcastEvent is the room's bus subscription. A session with a full
// send queue is skipped rather than blocking the turn loop.
func (r *room) broadcastEvent(e event.Event) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	msg := Message{Type: "event", Event: raw}

	r.mu.Lock()
	defer r.mu.Unlock()
	for s := range r.sessions {
		select {
		case s.send <- msg:
		default:
			r.logger.Warn("dropping event for slow client",
				slog.String("auction_id", r.auctionID),
			)
		}
	}
}

// session is one WebSocket connection. The write pump is the only writer
// on the connection.
type session struct {
	conn   *websocket.Conn
	rp     *remote.Participant
	logger *slog.Logger

	send      chan Message
	closeOnce sync.Once
	done      chan struct{}
}

func newSession(conn *websocket.Conn, rp *remote.Participant, logger *slog.Logger) *session {
	return &session{
		conn:   conn,
		rp:     rp,
		logger: logger,
		send:   make(chan Message, 32),
		done:   make(chan struct{}),
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// readPump consumes answers from the client until the connection drops.
// Spectator sessions have no participant actor and simply drain pings.
func (s *session) readPump() {
	defer s.close()
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		if s.rp == nil {
			continue
		}
		var ans remote.Answer
		if err := json.Unmarshal(raw, &ans); err != nil {
			s.logger.Warn("unreadable client message", slog.Any("error", err))
			continue
		}
		if err := s.rp.Resolve(ans); err != nil {
			s.logger.Warn("rejected client answer",
				slog.String("request_id", ans.RequestID),
				slog.Any("error", err),
			)
		}
	}
}

// writePump sends room events, participant questions and keepalive pings.
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	var asks <-chan remote.Ask
	if s.rp != nil {
		asks = s.rp.Outbound()
	}
	for {
		select {
		case msg := <-s.send:
			if err := s.write(msg); err != nil {
				return
			}
		case ask := <-asks:
			if err := s.write(Message{Type: "ask", Ask: &ask}); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) write(msg Message) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}
