package roster

// OwnershipPolicy decides whether a team may hold (another copy of) a
// player, regardless of price.
type OwnershipPolicy interface {
	CanOwn(t *Team, p *Player) bool
}

// NoDuplicates allows at most one copy of a player per team.
type NoDuplicates struct{}

func (NoDuplicates) CanOwn(t *Team, p *Player) bool { return !t.HasPlayer(p) }

// MaxCopies allows up to Max copies of the same player per team.
type MaxCopies struct {
	Max int
}

func (m MaxCopies) CanOwn(t *Team, p *Player) bool { return t.Copies(p) < m.Max }
