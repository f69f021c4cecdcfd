package roster

import "errors"

// Errors returned by Team.AddPlayer.
var (
	ErrCannotOwn          = errors.New("team cannot own this player")
	ErrInsufficientBudget = errors.New("insufficient budget")
)

// Entry is one purchased player on a team roster.
type Entry struct {
	Player *Player
	Price  int
}

// Team is an auction stakeholder with a budget and a roster.
// All mutation goes through AddPlayer; the add is atomic, a rejected
// purchase leaves both budget and roster untouched.
type Team struct {
	ID     int
	Name   string
	Budget int // initial budget, never changes
	Spent  int
	Roster []Entry

	ownership OwnershipPolicy
	budget    BudgetStrategy
}

// NewTeam creates a team bound to the given ownership and budget policies.
func NewTeam(id int, name string, budget int, ownership OwnershipPolicy, strategy BudgetStrategy) *Team {
	return &Team{
		ID:        id,
		Name:      name,
		Budget:    budget,
		ownership: ownership,
		budget:    strategy,
	}
}

// Remaining returns the budget still available to spend.
func (t *Team) Remaining() int { return t.Budget - t.Spent }

// Copies returns how many copies of p the team holds.
func (t *Team) Copies(p *Player) int {
	n := 0
	for _, e := range t.Roster {
		if e.Player.ID == p.ID {
			n++
		}
	}
	return n
}

// HasPlayer reports whether the team holds at least one copy of p.
func (t *Team) HasPlayer(p *Player) bool { return t.Copies(p) > 0 }

// CountByRole returns how many players of the given role the team holds.
func (t *Team) CountByRole(role Role) int {
	n := 0
	for _, e := range t.Roster {
		if e.Player.Role == role {
			n++
		}
	}
	return n
}

// AddPlayer purchases p at the given price. Ownership is checked first so
// no money moves on a duplicate; affordability is checked second; only when
// both pass does the purchase apply and the roster gain the entry.
func (t *Team) AddPlayer(p *Player, price int) error {
	if !t.ownership.CanOwn(t, p) {
		return ErrCannotOwn
	}
	if !t.budget.CanAfford(t, p, price) {
		return ErrInsufficientBudget
	}
	t.budget.ApplyPurchase(t, p, price)
	t.Roster = append(t.Roster, Entry{Player: p, Price: price})
	return nil
}

// CanBuy is the pure form of AddPlayer: same checks, no mutation.
func (t *Team) CanBuy(p *Player, price int) bool {
	return t.ownership.CanOwn(t, p) && t.budget.CanAfford(t, p, price)
}
