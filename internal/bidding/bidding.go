package bidding

import (
	"context"
	"time"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Bid is one monetary offer for a called player. Value object, owned by the
// turn that collected it.
type Bid struct {
	Team   *roster.Team
	Player *roster.Player
	Amount int
}

// Bidder is a party eligible to offer money for the currently called
// player. GetBid suspends until the bidder answers, the context expires, or
// the bidder disconnects; ok=false means "no bid" (pass).
type Bidder interface {
	ID() string
	Name() string
	Team() *roster.Team
	GetBid(ctx context.Context, player *roster.Player) (amount int, ok bool, err error)
}

// PlaceBid constructs a bid for an accepted amount. Pure construction step,
// performed only after the amount passed the eligibility re-check.
func PlaceBid(b Bidder, player *roster.Player, amount int) Bid {
	return Bid{Team: b.Team(), Player: player, Amount: amount}
}

// Eligibility re-validates a (team, player, amount) triple at accept time.
// Pre-filtering bidders is not enough: eligibility can go stale while asks
// are in flight, so every accepted bid is checked again here.
type Eligibility func(team *roster.Team, player *roster.Player, amount int) bool

// Observer is notified of every accepted bid as the round progresses.
// May be nil.
type Observer func(b Bid)

// Strategy runs one bidding round for a called player and determines the
// winning bid, or nil when the player goes unsold.
type Strategy interface {
	Run(ctx context.Context, player *roster.Player, bidders []Bidder, eligible Eligibility, observe Observer) (*Bid, error)
}

// round is the per-run state machine shared by all strategies.
type round struct {
	state string // "idle", "collecting", "resolved"
}

func newRound() *round { return &round{state: "idle"} }

func (r *round) collect() { r.state = "collecting" }
func (r *round) resolve() { r.state = "resolved" }

// ask solicits a bid with an optional per-ask countdown. Expiry, errors and
// non-positive amounts all count as "no bid", never as a round-level
// failure. Amounts are not trusted: a remote bidder could otherwise buy a
// player with a negative offer and grow its own budget.
func ask(ctx context.Context, b Bidder, player *roster.Player, timeout time.Duration) (int, bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	amount, ok, err := b.GetBid(ctx, player)
	if err != nil || !ok || amount <= 0 {
		return 0, false
	}
	return amount, true
}
