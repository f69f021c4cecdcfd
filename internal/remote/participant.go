// Package remote bridges a connected client into the auction's blocking
// caller/bidder interfaces. Each outbound question is tagged with a
// request id; the answer is matched back by that id, so a participant can
// only ever answer the question it was actually asked.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

var (
	// ErrProtocolMismatch is returned when an answer carries a payload of
	// the wrong kind for the question it references.
	ErrProtocolMismatch = errors.New("remote: response type does not match request")

	// ErrParticipantDisconnected fails every question outstanding at the
	// moment the participant's connection drops.
	ErrParticipantDisconnected = errors.New("remote: participant disconnected")

	// ErrOrderViolation is returned by Resolve for an answer that
	// references no outstanding question.
	ErrOrderViolation = errors.New("remote: no pending request for response")
)

// AskKind discriminates the questions a participant can be asked.
type AskKind string

const (
	AskChoosePlayer AskKind = "choose_player"
	AskGetBid       AskKind = "get_bid"
)

// Ask is an outbound question to the client.
type Ask struct {
	RequestID string          `json:"request_id"`
	Kind      AskKind         `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Answer is the client's reply to an Ask.
type Answer struct {
	RequestID string          `json:"request_id"`
	Kind      AskKind         `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

// ChoosePlayerPayload lists the players the caller may pick from.
type ChoosePlayerPayload struct {
	Players []*roster.Player `json:"players"`
}

// ChoosePlayerAnswer names the picked player, or none.
type ChoosePlayerAnswer struct {
	PlayerID *int `json:"player_id"`
}

// GetBidPayload names the player up for auction.
type GetBidPayload struct {
	Player *roster.Player `json:"player"`
}

// GetBidAnswer carries the offered amount; a nil amount is a pass.
type GetBidAnswer struct {
	Amount *int `json:"amount"`
}

type pendingAsk struct {
	kind AskKind
	ch   chan Answer
}

// Participant is the in-process stand-in for a remote client. It
// implements the caller and bidder contracts by turning each call into an
// Ask on the Outbound channel and blocking until the matching Answer
// arrives via Resolve.
type Participant struct {
	id   string
	name string
	team *roster.Team

	mu           sync.Mutex
	pending      map[string]pendingAsk
	disconnected bool

	outbound chan Ask
}

// NewParticipant creates a remote participant for team. Team may be nil
// for participants that only spectate.
func NewParticipant(id, name string, team *roster.Team) *Participant {
	return &Participant{
		id:       id,
		name:     name,
		team:     team,
		pending:  make(map[string]pendingAsk),
		outbound: make(chan Ask, 16),
	}
}

func (p *Participant) ID() string         { return p.id }
func (p *Participant) Name() string       { return p.name }
func (p *Participant) Team() *roster.Team { return p.team }

// Outbound is the stream of questions the transport must deliver to the
// client.
func (p *Participant) Outbound() <-chan Ask { return p.outbound }

// ChoosePlayer asks the client to pick a player from available. Returns
// nil when the client declines or picks a player not in the list.
func (p *Participant) ChoosePlayer(ctx context.Context, available []*roster.Player) (*roster.Player, error) {
	payload, err := json.Marshal(ChoosePlayerPayload{Players: available})
	if err != nil {
		return nil, err
	}
	ans, err := p.ask(ctx, AskChoosePlayer, payload)
	if err != nil {
		return nil, err
	}
	var body ChoosePlayerAnswer
	if err := json.Unmarshal(ans.Payload, &body); err != nil {
		return nil, ErrProtocolMismatch
	}
	if body.PlayerID == nil {
		return nil, nil
	}
	for _, pl := range available {
		if pl.ID == *body.PlayerID {
			return pl, nil
		}
	}
	return nil, nil
}

// GetBid asks the client for an offer on player. ok is false on a pass.
func (p *Participant) GetBid(ctx context.Context, player *roster.Player) (int, bool, error) {
	payload, err := json.Marshal(GetBidPayload{Player: player})
	if err != nil {
		return 0, false, err
	}
	ans, err := p.ask(ctx, AskGetBid, payload)
	if err != nil {
		return 0, false, err
	}
	var body GetBidAnswer
	if err := json.Unmarshal(ans.Payload, &body); err != nil {
		return 0, false, ErrProtocolMismatch
	}
	if body.Amount == nil {
		return 0, false, nil
	}
	return *body.Amount, true, nil
}

func (p *Participant) ask(ctx context.Context, kind AskKind, payload json.RawMessage) (Answer, error) {
	id := uuid.NewString()
	ch := make(chan Answer, 1)

	p.mu.Lock()
	if p.disconnected {
		p.mu.Unlock()
		return Answer{}, ErrParticipantDisconnected
	}
	p.pending[id] = pendingAsk{kind: kind, ch: ch}
	p.mu.Unlock()

	select {
	case p.outbound <- Ask{RequestID: id, Kind: kind, Payload: payload}:
	case <-ctx.Done():
		p.drop(id)
		return Answer{}, ctx.Err()
	}

	select {
	case ans, ok := <-ch:
		if !ok {
			return Answer{}, ErrParticipantDisconnected
		}
		if ans.Kind != kind {
			return Answer{}, ErrProtocolMismatch
		}
		return ans, nil
	case <-ctx.Done():
		p.drop(id)
		return Answer{}, ctx.Err()
	}
}

// Resolve delivers an answer from the transport. Each outstanding
// question is settled at most once; an answer with an unknown or
// already-settled request id is rejected with ErrOrderViolation.
func (p *Participant) Resolve(ans Answer) error {
	p.mu.Lock()
	pa, ok := p.pending[ans.RequestID]
	if ok {
		delete(p.pending, ans.RequestID)
	}
	p.mu.Unlock()
	if !ok {
		return ErrOrderViolation
	}
	pa.ch <- ans
	return nil
}

// Disconnect marks the participant gone and fails every outstanding
// question. Safe to call more than once.
func (p *Participant) Disconnect() {
	p.mu.Lock()
	if p.disconnected {
		p.mu.Unlock()
		return
	}
	p.disconnected = true
	pending := p.pending
	p.pending = make(map[string]pendingAsk)
	p.mu.Unlock()

	for _, pa := range pending {
		close(pa.ch)
	}
}

// Connected reports whether the participant can still be asked questions.
func (p *Participant) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.disconnected
}

func (p *Participant) drop(id string) {
	p.mu.Lock()
	delete(p.pending, id)
	p.mu.Unlock()
}
