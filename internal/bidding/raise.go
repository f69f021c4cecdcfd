package bidding

import (
	"context"
	"time"

	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// RaiseOrPass is poker-style turn-based bidding: bidders act in a fixed
// order, each round, and must either raise the current high by at least
// MinRaise or pass permanently. The round repeats among still-active
// bidders until one remains; that bidder wins at their last raised amount.
type RaiseOrPass struct {
	Market pool.MarketRule
	// MinRaise is the minimum increment over the current high; zero
	// means 1.
	MinRaise   int
	AskTimeout time.Duration
}

func (s *RaiseOrPass) Run(ctx context.Context, player *roster.Player, bidders []Bidder, eligible Eligibility, observe Observer) (*Bid, error) {
	r := newRound()
	if !s.Market.Available(player) {
		r.resolve()
		return nil, nil
	}
	minRaise := s.MinRaise
	if minRaise <= 0 {
		minRaise = 1
	}

	r.collect()
	active := make([]Bidder, len(bidders))
	copy(active, bidders)

	highest := 0
	var winner *Bid

	for len(active) > 1 {
		if ctx.Err() != nil {
			break
		}
		next := active[:0:0]
		for _, b := range active {
			amount, ok := ask(ctx, b, player, s.AskTimeout)
			if !ok {
				continue // pass, no re-entry this turn
			}
			if amount < highest+minRaise {
				continue // an insufficient raise counts as a pass
			}
			if !eligible(b.Team(), player, amount) {
				continue
			}
			highest = amount
			bid := PlaceBid(b, player, amount)
			winner = &bid
			next = append(next, b)
			if observe != nil {
				observe(bid)
			}
		}
		active = next
	}

	// A lone survivor that never raised has offered nothing; the player
	// goes unsold rather than being given away.
	if len(active) == 1 && winner == nil {
		if amount, ok := ask(ctx, active[0], player, s.AskTimeout); ok && amount >= minRaise && eligible(active[0].Team(), player, amount) {
			bid := PlaceBid(active[0], player, amount)
			winner = &bid
			if observe != nil {
				observe(bid)
			}
		}
	}

	r.resolve()
	return winner, nil
}
