package auction

import (
	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/calling"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// TurnStatus tracks the lifecycle of a single turn.
type TurnStatus string

const (
	TurnNotStarted TurnStatus = "not_started"
	TurnInProgress TurnStatus = "in_progress"
	TurnPassed     TurnStatus = "passed"
	TurnComplete   TurnStatus = "complete"
)

// Turn is one full cycle of call, bid, assign (or skip). Turns are owned by
// the auction's history; the current turn is just a reference into it.
type Turn struct {
	Number int
	Caller calling.Caller
	Player *roster.Player
	Bids   []bidding.Bid
	Winner *bidding.Bid
	Status TurnStatus
}

func newTurn(number int) *Turn {
	return &Turn{Number: number, Status: TurnNotStarted}
}
