package bidding

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Sealed is closed-bid auctioning: every eligible bidder is asked exactly
// once, concurrently, with no visibility into the other offers. The highest
// amount wins; an exact tie goes to the first bidder in eligibility order.
type Sealed struct {
	Market     pool.MarketRule
	AskTimeout time.Duration
}

func (s *Sealed) Run(ctx context.Context, player *roster.Player, bidders []Bidder, eligible Eligibility, observe Observer) (*Bid, error) {
	r := newRound()
	if !s.Market.Available(player) || len(bidders) == 0 {
		r.resolve()
		return nil, nil
	}

	r.collect()
	amounts := make([]int, len(bidders))
	answered := make([]bool, len(bidders))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bidders {
		g.Go(func() error {
			amounts[i], answered[i] = ask(gctx, b, player, s.AskTimeout)
			return nil
		})
	}
	_ = g.Wait() // asks never return errors; a failed ask is just "no bid"

	// Evaluation in eligibility order: the first bidder reaching the
	// maximum keeps the win on an exact tie.
	var winner *Bid
	for i, b := range bidders {
		if !answered[i] {
			continue
		}
		if winner != nil && amounts[i] <= winner.Amount {
			continue
		}
		if !eligible(b.Team(), player, amounts[i]) {
			continue
		}
		bid := PlaceBid(b, player, amounts[i])
		winner = &bid
		if observe != nil {
			observe(bid)
		}
	}

	r.resolve()
	return winner, nil
}
