package roster_test

import (
	"errors"
	"testing"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

func striker(id int) *roster.Player {
	return &roster.Player{ID: id, Name: "Striker", Role: roster.Forward, Club: "FC Test"}
}

func TestTeam_AddPlayer(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 100, roster.NoDuplicates{}, roster.LimitedBudget{})

	if err := tm.AddPlayer(striker(1), 60); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if tm.Spent != 60 {
		t.Errorf("Spent = %d, want 60", tm.Spent)
	}
	if tm.Remaining() != 40 {
		t.Errorf("Remaining() = %d, want 40", tm.Remaining())
	}
	if !tm.HasPlayer(striker(1)) {
		t.Error("expected team to own player 1")
	}
}

func TestTeam_AddPlayer_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(tm *roster.Team)
		player  *roster.Player
		price   int
		wantErr error
	}{
		{
			name:    "over budget",
			player:  striker(1),
			price:   101,
			wantErr: roster.ErrInsufficientBudget,
		},
		{
			name: "duplicate player",
			setup: func(tm *roster.Team) {
				if err := tm.AddPlayer(striker(1), 10); err != nil {
					t.Fatal(err)
				}
			},
			player:  striker(1),
			price:   10,
			wantErr: roster.ErrCannotOwn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := roster.NewTeam(1, "Alpha", 100, roster.NoDuplicates{}, roster.LimitedBudget{})
			if tt.setup != nil {
				tt.setup(tm)
			}
			before := tm.Spent
			rosterBefore := len(tm.Roster)

			err := tm.AddPlayer(tt.player, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddPlayer error = %v, want %v", err, tt.wantErr)
			}
			// A rejected purchase must leave the team untouched.
			if tm.Spent != before {
				t.Errorf("Spent changed on rejection: %d -> %d", before, tm.Spent)
			}
			if len(tm.Roster) != rosterBefore {
				t.Errorf("Roster changed on rejection: %d -> %d", rosterBefore, len(tm.Roster))
			}
		})
	}
}

func TestTeam_ExactBudget(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 100, roster.NoDuplicates{}, roster.LimitedBudget{})
	if err := tm.AddPlayer(striker(1), 100); err != nil {
		t.Fatalf("spending the whole budget should succeed: %v", err)
	}
	if tm.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", tm.Remaining())
	}
	if err := tm.AddPlayer(striker(2), 1); !errors.Is(err, roster.ErrInsufficientBudget) {
		t.Errorf("AddPlayer after exhaustion = %v, want ErrInsufficientBudget", err)
	}
}

func TestUnlimitedBudget(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 10, roster.NoDuplicates{}, roster.UnlimitedBudget{})
	if err := tm.AddPlayer(striker(1), 1000); err != nil {
		t.Fatalf("unlimited budget must always afford: %v", err)
	}
	if tm.Spent != 1000 {
		t.Errorf("Spent = %d, want 1000 (spend is still tracked)", tm.Spent)
	}
}

func TestNegativePriceRejected(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 100, roster.NoDuplicates{}, roster.LimitedBudget{})

	if tm.CanBuy(striker(1), -50) {
		t.Error("CanBuy with a negative price should be false")
	}
	if err := tm.AddPlayer(striker(1), -50); !errors.Is(err, roster.ErrInsufficientBudget) {
		t.Errorf("AddPlayer(-50) = %v, want ErrInsufficientBudget", err)
	}
	if tm.Spent != 0 || len(tm.Roster) != 0 {
		t.Errorf("rejected purchase mutated the team: spent=%d roster=%d", tm.Spent, len(tm.Roster))
	}

	// Negative prices are refunds for the buyer; even an unlimited budget
	// rejects them.
	free := roster.NewTeam(2, "Bravo", 0, roster.NoDuplicates{}, roster.UnlimitedBudget{})
	if err := free.AddPlayer(striker(1), -1); err == nil {
		t.Error("unlimited budget accepted a negative price")
	}
}

func TestMaxCopies(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 1000, roster.MaxCopies{Max: 2}, roster.LimitedBudget{})

	for i := 0; i < 2; i++ {
		if err := tm.AddPlayer(striker(1), 10); err != nil {
			t.Fatalf("copy %d: %v", i+1, err)
		}
	}
	if got := tm.Copies(striker(1)); got != 2 {
		t.Errorf("Copies = %d, want 2", got)
	}
	if err := tm.AddPlayer(striker(1), 10); !errors.Is(err, roster.ErrCannotOwn) {
		t.Errorf("third copy = %v, want ErrCannotOwn", err)
	}
}

func TestCanBuy(t *testing.T) {
	tm := roster.NewTeam(1, "Alpha", 50, roster.NoDuplicates{}, roster.LimitedBudget{})

	if !tm.CanBuy(striker(1), 50) {
		t.Error("CanBuy at exact budget should be true")
	}
	if tm.CanBuy(striker(1), 51) {
		t.Error("CanBuy over budget should be false")
	}

	// CanBuy must not mutate.
	if tm.Spent != 0 || len(tm.Roster) != 0 {
		t.Error("CanBuy mutated the team")
	}
}

func TestFixedMax(t *testing.T) {
	strategy := roster.FixedMax{Slots: map[roster.Role]int{
		roster.Goalkeeper: 1,
		roster.Forward:    2,
	}}
	tm := roster.NewTeam(1, "Alpha", 1000, roster.NoDuplicates{}, roster.LimitedBudget{})

	if !strategy.CanAssign(tm, striker(1), 1) {
		t.Error("empty roster should accept a forward")
	}
	if strategy.Complete(tm) {
		t.Error("empty roster must not be complete")
	}

	tm.AddPlayer(striker(1), 1)
	tm.AddPlayer(striker(2), 1)
	if strategy.CanAssign(tm, striker(3), 1) {
		t.Error("forward slots are full")
	}
	if got := strategy.RolesRemaining(tm); got[roster.Goalkeeper] != 1 || got[roster.Forward] != 0 {
		t.Errorf("RolesRemaining = %v", got)
	}

	tm.AddPlayer(&roster.Player{ID: 9, Name: "Keeper", Role: roster.Goalkeeper}, 1)
	if !strategy.Complete(tm) {
		t.Error("all slots filled, roster should be complete")
	}
}

func TestMinMax(t *testing.T) {
	strategy := roster.MinMax{
		Min: map[roster.Role]int{roster.Forward: 1},
		Max: map[roster.Role]int{roster.Forward: 2},
	}
	tm := roster.NewTeam(1, "Alpha", 1000, roster.MaxCopies{Max: 10}, roster.LimitedBudget{})

	if strategy.Complete(tm) {
		t.Error("below minimum, must not be complete")
	}
	tm.AddPlayer(striker(1), 1)
	if !strategy.Complete(tm) {
		t.Error("minimum reached, should be complete")
	}
	tm.AddPlayer(striker(2), 1)
	if strategy.CanAssign(tm, striker(3), 1) {
		t.Error("maximum reached, must not assign")
	}
}
