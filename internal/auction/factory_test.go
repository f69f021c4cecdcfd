package auction_test

import (
	"strings"
	"testing"

	"github.com/jensholdgaard/fantadraft/internal/auction"
	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/calling"
	"github.com/jensholdgaard/fantadraft/internal/config"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

func baseConfig() config.AuctionConfig {
	return config.AuctionConfig{
		Name:          "League",
		Teams:         4,
		InitialBudget: 260,
		Ownership:     "no-duplicates",
		Budget:        "limited",
		TeamBuilding:  "fixed-max",
		RoleSlots:     map[string]int{"goalkeeper": 1, "forward": 3},
		Market:        "unique",
		Calling:       "sequential",
		Direction:     "clockwise",
		Bidding:       "free",
		Unsold:        "return",
	}
}

func TestAssemble(t *testing.T) {
	opts, err := auction.Assemble("a1", baseConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if opts.ID != "a1" || opts.Name != "League" {
		t.Errorf("identity = (%q, %q)", opts.ID, opts.Name)
	}
	if len(opts.Teams) != 4 {
		t.Fatalf("teams = %d, want 4", len(opts.Teams))
	}
	for i, tm := range opts.Teams {
		if tm.ID != i+1 {
			t.Errorf("team %d has id %d", i, tm.ID)
		}
		if tm.Budget != 260 {
			t.Errorf("team %d budget = %d, want 260", i, tm.Budget)
		}
		if !strings.HasPrefix(tm.Name, "Team ") {
			t.Errorf("team %d name = %q", i, tm.Name)
		}
	}
	if _, ok := opts.Calling.(*calling.Sequential); !ok {
		t.Errorf("calling strategy = %T, want *calling.Sequential", opts.Calling)
	}
	if _, ok := opts.Bidding.(*bidding.Free); !ok {
		t.Errorf("bidding strategy = %T, want *bidding.Free", opts.Bidding)
	}
	if opts.Builder == nil {
		t.Error("builder not assembled")
	}
	if opts.Unsold != auction.UnsoldReturn {
		t.Errorf("unsold = %q", opts.Unsold)
	}
}

func TestAssemble_StrategySelection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuctionConfig)
		check  func(t *testing.T, opts auction.Options)
	}{
		{
			name: "broadcast race calling",
			mutate: func(c *config.AuctionConfig) {
				c.Calling = "broadcast-race"
			},
			check: func(t *testing.T, opts auction.Options) {
				if _, ok := opts.Calling.(*calling.BroadcastRace); !ok {
					t.Errorf("calling = %T", opts.Calling)
				}
			},
		},
		{
			name: "sealed bidding",
			mutate: func(c *config.AuctionConfig) {
				c.Bidding = "closed-sealed"
			},
			check: func(t *testing.T, opts auction.Options) {
				if _, ok := opts.Bidding.(*bidding.Sealed); !ok {
					t.Errorf("bidding = %T", opts.Bidding)
				}
			},
		},
		{
			name: "raise or pass bidding",
			mutate: func(c *config.AuctionConfig) {
				c.Bidding = "raise-or-pass"
				c.MinRaise = 5
			},
			check: func(t *testing.T, opts auction.Options) {
				s, ok := opts.Bidding.(*bidding.RaiseOrPass)
				if !ok {
					t.Fatalf("bidding = %T", opts.Bidding)
				}
				if s.MinRaise != 5 {
					t.Errorf("MinRaise = %d, want 5", s.MinRaise)
				}
			},
		},
		{
			name: "multi-copy market allows pool duplicates",
			mutate: func(c *config.AuctionConfig) {
				c.Market = "multi-copy"
				c.MarketCopies = 2
				c.Ownership = "max-copies"
				c.MaxCopies = 2
			},
			check: func(t *testing.T, opts auction.Options) {
				p := &roster.Player{ID: 1, Name: "Striker", Role: roster.Forward}
				opts.Pool.AddPlayers(p)
				if !opts.Pool.AssignToTeam(p, opts.Teams[0], 1) {
					t.Fatal("first assignment failed")
				}
				if !opts.Pool.IsAvailableForTeam(p, opts.Teams[1]) {
					t.Error("multi-copy pool should keep the player available for other teams")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			opts, err := auction.Assemble("a1", cfg)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestAssemble_Invalid(t *testing.T) {
	cfg := baseConfig()
	cfg.Bidding = "dutch"
	if _, err := auction.Assemble("a1", cfg); err == nil {
		t.Error("Assemble succeeded with an unknown bidding strategy")
	}

	cfg = baseConfig()
	cfg.RoleSlots = map[string]int{"librero": 1}
	if _, err := auction.Assemble("a1", cfg); err == nil {
		t.Error("Assemble succeeded with an unknown role")
	}

	cfg = baseConfig()
	cfg.RoleOrder = []string{"goalkeeper", "sweeper"}
	if _, err := auction.Assemble("a1", cfg); err == nil {
		t.Error("Assemble succeeded with an unknown role in role_order")
	}
}
