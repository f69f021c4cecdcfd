package event

import (
	"encoding/json"
	"time"
)

// Type identifies an event kind.
type Type string

const (
	AuctionStarted    Type = "auction.started"
	TurnStarted       Type = "auction.turn_started"
	PlayerCalled      Type = "auction.player_called"
	BidPlaced         Type = "auction.bid_placed"
	PlayerAssigned    Type = "auction.player_assigned"
	ParticipantJoined Type = "auction.participant_joined"
	AuctionFinished   Type = "auction.finished"
)

// Event represents a single domain event.
type Event struct {
	ID          string          `json:"id" db:"id"`
	AggregateID string          `json:"aggregate_id" db:"aggregate_id"`
	Type        Type            `json:"type" db:"type"`
	Data        json.RawMessage `json:"data" db:"data"`
	Version     int             `json:"version" db:"version"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// AuctionStartedData is the payload for AuctionStarted events.
type AuctionStartedData struct {
	Name  string `json:"name"`
	Teams int    `json:"teams"`
}

// TurnStartedData is the payload for TurnStarted events.
type TurnStartedData struct {
	TurnNumber int    `json:"turn_number"`
	CallerID   string `json:"caller_id"`
	CallerName string `json:"caller_name"`
}

// PlayerCalledData is the payload for PlayerCalled events.
type PlayerCalledData struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Role       string `json:"role"`
}

// BidPlacedData is the payload for BidPlaced events.
type BidPlacedData struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	Amount   int    `json:"amount"`
}

// PlayerAssignedData is the payload for PlayerAssigned events.
type PlayerAssignedData struct {
	TeamID     int    `json:"team_id"`
	TeamName   string `json:"team_name"`
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Amount     int    `json:"amount"`
}

// ParticipantJoinedData is the payload for ParticipantJoined events.
type ParticipantJoinedData struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	TeamID        int    `json:"team_id,omitempty"`
}

// AuctionFinishedData is the payload for AuctionFinished events.
type AuctionFinishedData struct {
	Reason string `json:"reason"` // "no_players", "no_callers", "stopped"
	Turns  int    `json:"turns"`
}
