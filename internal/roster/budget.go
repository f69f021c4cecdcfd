package roster

// BudgetStrategy decides affordability and applies the monetary effect of
// a purchase. Implementations never touch the roster itself.
type BudgetStrategy interface {
	CanAfford(t *Team, p *Player, price int) bool
	ApplyPurchase(t *Team, p *Player, price int)
}

// LimitedBudget enforces spent <= initial budget. A negative price is
// never affordable; it would refund the buyer.
type LimitedBudget struct{}

func (LimitedBudget) CanAfford(t *Team, _ *Player, price int) bool {
	return price >= 0 && t.Remaining() >= price
}

func (LimitedBudget) ApplyPurchase(t *Team, _ *Player, price int) {
	t.Spent += price
}

// UnlimitedBudget affords any non-negative purchase and still tracks
// spending.
type UnlimitedBudget struct{}

func (UnlimitedBudget) CanAfford(_ *Team, _ *Player, price int) bool { return price >= 0 }

func (UnlimitedBudget) ApplyPurchase(t *Team, _ *Player, price int) {
	t.Spent += price
}
