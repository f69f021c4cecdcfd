package calling

import (
	"context"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Race asks every caller to choose a player concurrently and commits to the
// first non-nil selection, cancelling the remaining asks. A caller that
// declines is out of this race only; a caller whose ask errors (for example
// a dropped connection) is reported in failed so the auction can remove it
// from the rotation. Returns a nil caller and player when no caller
// produces a selection or the context is cancelled first.
//
// The buffered results channel guarantees a late response never blocks its
// goroutine; it is received and discarded, never acted upon.
func Race(ctx context.Context, callers []Caller, available []*roster.Player) (winner Caller, player *roster.Player, failed []Caller) {
	if len(callers) == 0 {
		return nil, nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		caller Caller
		player *roster.Player
		err    error
	}
	results := make(chan result, len(callers))

	for _, c := range callers {
		go func(c Caller) {
			p, err := c.ChoosePlayer(ctx, available)
			results <- result{caller: c, player: p, err: err}
		}(c)
	}

	for range callers {
		select {
		case r := <-results:
			if r.err != nil {
				if ctx.Err() == nil {
					failed = append(failed, r.caller)
				}
				continue
			}
			if r.player != nil {
				return r.caller, r.player, failed
			}
		case <-ctx.Done():
			return nil, nil, failed
		}
	}
	return nil, nil, failed
}
