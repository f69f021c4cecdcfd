package bidding

import (
	"context"
	"time"

	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

const defaultMaxStaleRounds = 3

// Free is open bidding: bidders are iterated repeatedly and each may offer
// any amount. A pass removes the bidder from future rounds. The running
// highest bid is tracked; the first team to reach the current high keeps
// priority until a strictly greater bid supersedes it. The round terminates
// when at most one active bidder remains or no bid improves on the high for
// MaxStaleRounds consecutive rounds.
type Free struct {
	Market pool.MarketRule
	// MaxStaleRounds bounds rounds with no improvement; zero means the
	// default of 3.
	MaxStaleRounds int
	// AskTimeout bounds each individual ask; zero disables the countdown.
	AskTimeout time.Duration
}

func (s *Free) Run(ctx context.Context, player *roster.Player, bidders []Bidder, eligible Eligibility, observe Observer) (*Bid, error) {
	r := newRound()
	if !s.Market.Available(player) {
		r.resolve()
		return nil, nil
	}
	maxStale := s.MaxStaleRounds
	if maxStale <= 0 {
		maxStale = defaultMaxStaleRounds
	}

	r.collect()
	active := make([]Bidder, len(bidders))
	copy(active, bidders)

	var highest *Bid
	stale := 0

	// A lone bidder still gets asked once; it wins at its own offer.
	if len(active) == 1 {
		if amount, ok := ask(ctx, active[0], player, s.AskTimeout); ok && eligible(active[0].Team(), player, amount) {
			bid := PlaceBid(active[0], player, amount)
			highest = &bid
			if observe != nil {
				observe(bid)
			}
		}
		r.resolve()
		return highest, nil
	}

	for len(active) > 1 {
		if ctx.Err() != nil {
			break
		}
		improved := false
		next := active[:0:0]
		for _, b := range active {
			amount, ok := ask(ctx, b, player, s.AskTimeout)
			if !ok {
				continue // pass removes the bidder for good
			}
			next = append(next, b)
			if highest != nil && amount <= highest.Amount {
				continue // only strictly greater supersedes the holder
			}
			if !eligible(b.Team(), player, amount) {
				continue
			}
			bid := PlaceBid(b, player, amount)
			highest = &bid
			improved = true
			if observe != nil {
				observe(bid)
			}
		}
		active = next
		if improved {
			stale = 0
			continue
		}
		stale++
		if stale >= maxStale {
			break
		}
	}

	r.resolve()
	return highest, nil
}
