package bidding_test

import (
	"context"
	"testing"

	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// fakeBidder answers GetBid from a script of offers; a nil entry is a pass.
// Once the script runs out, every further ask is a pass.
type fakeBidder struct {
	id     string
	team   *roster.Team
	script []*int

	asks int
}

func offer(n int) *int { return &n }

func newFakeBidder(id string, budget int, script ...*int) *fakeBidder {
	team := roster.NewTeam(len(id), id, budget, roster.NoDuplicates{}, roster.LimitedBudget{})
	return &fakeBidder{id: id, team: team, script: script}
}

func (f *fakeBidder) ID() string         { return f.id }
func (f *fakeBidder) Name() string       { return f.id }
func (f *fakeBidder) Team() *roster.Team { return f.team }

func (f *fakeBidder) GetBid(_ context.Context, _ *roster.Player) (int, bool, error) {
	f.asks++
	if len(f.script) == 0 {
		return 0, false, nil
	}
	next := f.script[0]
	f.script = f.script[1:]
	if next == nil {
		return 0, false, nil
	}
	return *next, true, nil
}

func calledPlayer() *roster.Player {
	return &roster.Player{ID: 1, Name: "Striker", Role: roster.Forward}
}

func alwaysEligible(_ *roster.Team, _ *roster.Player, _ int) bool { return true }

func budgetEligible(team *roster.Team, p *roster.Player, amount int) bool {
	return team.CanBuy(p, amount)
}

func TestFree_HigherBidSupersedes(t *testing.T) {
	a := newFakeBidder("a", 100, offer(10), nil)
	b := newFakeBidder("b", 100, offer(10), offer(15))
	s := &bidding.Free{Market: pool.NewUniqueMarket()}

	var seen []bidding.Bid
	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, func(bd bidding.Bid) { seen = append(seen, bd) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "b" || winner.Amount != 15 {
		t.Fatalf("winner = %+v, want b at 15", winner)
	}
	// a's 10, then b's superseding 15. b's first matching 10 never counts
	// as a new high.
	if len(seen) != 2 || seen[0].Amount != 10 || seen[1].Amount != 15 {
		t.Errorf("observed bids = %+v", seen)
	}
}

func TestFree_TiePriorityToFirstHolder(t *testing.T) {
	a := newFakeBidder("a", 100, offer(20), nil, nil, nil)
	b := newFakeBidder("b", 100, offer(20), offer(20), offer(20), offer(20))
	s := &bidding.Free{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// b keeps matching a's 20 but never exceeds it; once a passes the
	// stale-round limit ends the round with a still holding the high.
	if winner == nil || winner.Team.Name != "a" || winner.Amount != 20 {
		t.Fatalf("winner = %+v, want a at 20", winner)
	}
}

func TestFree_LoneBidderIsAskedOnce(t *testing.T) {
	a := newFakeBidder("a", 100, offer(5))
	s := &bidding.Free{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Amount != 5 {
		t.Fatalf("winner = %+v, want a at 5", winner)
	}
	if a.asks != 1 {
		t.Errorf("lone bidder asked %d times, want 1", a.asks)
	}
}

func TestFree_AllPassUnsold(t *testing.T) {
	a := newFakeBidder("a", 100, nil)
	b := newFakeBidder("b", 100, nil)
	s := &bidding.Free{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner != nil {
		t.Errorf("winner = %+v, want unsold", winner)
	}
}

func TestFree_IneligibleBidNeverWins(t *testing.T) {
	// b offers beyond its budget; the re-check must reject it.
	a := newFakeBidder("a", 100, offer(10), nil, nil, nil)
	b := newFakeBidder("b", 20, offer(50), nil, nil, nil)
	s := &bidding.Free{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, budgetEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "a" || winner.Amount != 10 {
		t.Fatalf("winner = %+v, want a at 10", winner)
	}
}

func TestSealed_HighestWins(t *testing.T) {
	a := newFakeBidder("a", 100, offer(50))
	b := newFakeBidder("b", 100, offer(80))
	c := newFakeBidder("c", 100, offer(60))
	s := &bidding.Sealed{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b, c}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "b" || winner.Amount != 80 {
		t.Fatalf("winner = %+v, want b at 80", winner)
	}
}

func TestSealed_TieGoesToFirstInOrder(t *testing.T) {
	a := newFakeBidder("a", 100, offer(50))
	b := newFakeBidder("b", 100, offer(80))
	c := newFakeBidder("c", 100, offer(80))
	s := &bidding.Sealed{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b, c}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "b" {
		t.Fatalf("winner = %+v, want b (first to reach 80)", winner)
	}
}

func TestSealed_EachBidderAskedExactlyOnce(t *testing.T) {
	a := newFakeBidder("a", 100, offer(10))
	b := newFakeBidder("b", 100, offer(20))
	s := &bidding.Sealed{Market: pool.NewUniqueMarket()}

	if _, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.asks != 1 || b.asks != 1 {
		t.Errorf("asks = (%d, %d), want (1, 1)", a.asks, b.asks)
	}
}

func TestSealed_AllPassUnsold(t *testing.T) {
	a := newFakeBidder("a", 100, nil)
	b := newFakeBidder("b", 100, nil)
	s := &bidding.Sealed{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner != nil {
		t.Errorf("winner = %+v, want unsold", winner)
	}
}

func TestRaiseOrPass_LastRaiserWins(t *testing.T) {
	a := newFakeBidder("a", 100, offer(10), offer(30), nil)
	b := newFakeBidder("b", 100, offer(20), nil)
	s := &bidding.RaiseOrPass{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "a" || winner.Amount != 30 {
		t.Fatalf("winner = %+v, want a at 30", winner)
	}
}

func TestRaiseOrPass_InsufficientRaiseIsAPass(t *testing.T) {
	a := newFakeBidder("a", 100, offer(10))
	b := newFakeBidder("b", 100, offer(12)) // below 10+5
	s := &bidding.RaiseOrPass{Market: pool.NewUniqueMarket(), MinRaise: 5}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{a, b}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Team.Name != "a" || winner.Amount != 10 {
		t.Fatalf("winner = %+v, want a at 10", winner)
	}
}

func TestRaiseOrPass_LoneBidderMustStillOffer(t *testing.T) {
	pass := newFakeBidder("pass", 100)
	s := &bidding.RaiseOrPass{Market: pool.NewUniqueMarket()}

	winner, err := s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{pass}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner != nil {
		t.Errorf("winner = %+v, want unsold (lone bidder passed)", winner)
	}

	offers := newFakeBidder("offers", 100, offer(7))
	winner, err = s.Run(context.Background(), calledPlayer(),
		[]bidding.Bidder{offers}, alwaysEligible, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner == nil || winner.Amount != 7 {
		t.Fatalf("winner = %+v, want offers at 7", winner)
	}
}

func TestStrategies_NonPositiveAmountIsAPass(t *testing.T) {
	// A negative winning amount would credit the buyer's budget, so a
	// non-positive offer is treated as a pass under every strategy. The
	// budget re-check alone is not trusted with it.
	for _, amount := range []int{-50, 0} {
		strategies := []bidding.Strategy{
			&bidding.Free{Market: pool.NewUniqueMarket()},
			&bidding.Sealed{Market: pool.NewUniqueMarket()},
			&bidding.RaiseOrPass{Market: pool.NewUniqueMarket()},
		}
		for _, s := range strategies {
			a := newFakeBidder("a", 100, offer(amount))
			var seen []bidding.Bid
			winner, err := s.Run(context.Background(), calledPlayer(),
				[]bidding.Bidder{a}, alwaysEligible, func(bd bidding.Bid) { seen = append(seen, bd) })
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if winner != nil {
				t.Errorf("%T: winner = %+v for offer %d, want nil", s, winner, amount)
			}
			if len(seen) != 0 {
				t.Errorf("%T: observed %d bids for offer %d, want none", s, len(seen), amount)
			}
			if a.team.Spent != 0 {
				t.Errorf("%T: team spent = %d after offer %d", s, a.team.Spent, amount)
			}
		}
	}
}

func TestStrategies_SoldOutMarket(t *testing.T) {
	market := pool.NewUniqueMarket()
	p := calledPlayer()
	market.RegisterAssignment(newFakeBidder("x", 100).Team(), p)

	strategies := []bidding.Strategy{
		&bidding.Free{Market: market},
		&bidding.Sealed{Market: market},
		&bidding.RaiseOrPass{Market: market},
	}
	for _, s := range strategies {
		a := newFakeBidder("a", 100, offer(10))
		winner, err := s.Run(context.Background(), p, []bidding.Bidder{a}, alwaysEligible, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if winner != nil {
			t.Errorf("%T: winner = %+v for a sold-out player, want nil", s, winner)
		}
		if a.asks != 0 {
			t.Errorf("%T: bidder asked %d times for a sold-out player", s, a.asks)
		}
	}
}
