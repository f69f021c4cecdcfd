package pool

import (
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// PlayerPool is the mutable catalog of players and their assignment status.
// It is not safe for concurrent use: the auction loop is its single writer.
type PlayerPool struct {
	players         []*roster.Player
	allowDuplicates bool

	assigned  map[int][]int // player id -> team ids holding a copy
	discarded map[int]bool
}

// New creates an empty pool. With allowDuplicates the same player stays
// available after being assigned, subject only to the per-team rule.
func New(allowDuplicates bool) *PlayerPool {
	return &PlayerPool{
		allowDuplicates: allowDuplicates,
		assigned:        make(map[int][]int),
		discarded:       make(map[int]bool),
	}
}

// AddPlayers seeds the pool.
func (pp *PlayerPool) AddPlayers(players ...*roster.Player) {
	pp.players = append(pp.players, players...)
}

// All returns every player ever added, assigned or not.
func (pp *PlayerPool) All() []*roster.Player {
	out := make([]*roster.Player, len(pp.players))
	copy(out, pp.players)
	return out
}

// ByRole returns all players of the given role.
func (pp *PlayerPool) ByRole(role roster.Role) []*roster.Player {
	var out []*roster.Player
	for _, p := range pp.players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// Available returns players that can still be called up: not discarded and,
// unless duplicates are allowed, not yet assigned anywhere.
func (pp *PlayerPool) Available() []*roster.Player {
	var out []*roster.Player
	for _, p := range pp.players {
		if pp.discarded[p.ID] {
			continue
		}
		if !pp.allowDuplicates {
			if _, taken := pp.assigned[p.ID]; taken {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// IsAvailableForTeam reports whether p could still be assigned to team.
// Pure query, same eligibility rule as AssignToTeam.
func (pp *PlayerPool) IsAvailableForTeam(p *roster.Player, team *roster.Team) bool {
	if pp.discarded[p.ID] {
		return false
	}
	holders, taken := pp.assigned[p.ID]
	if taken && !pp.allowDuplicates {
		return false
	}
	for _, id := range holders {
		if id == team.ID {
			return false
		}
	}
	return true
}

// AssignToTeam attempts to sell p to team at the given price. It returns
// false with no mutation when the player is no longer available for that
// team or the team's own validated add rejects the purchase. This is the
// single mutation point for "a player has been sold".
func (pp *PlayerPool) AssignToTeam(p *roster.Player, team *roster.Team, price int) bool {
	if !pp.IsAvailableForTeam(p, team) {
		return false
	}
	if err := team.AddPlayer(p, price); err != nil {
		return false
	}
	pp.assigned[p.ID] = append(pp.assigned[p.ID], team.ID)
	return true
}

// Discard removes p from future availability without assigning it.
// Used by the unsold-player disposition policy.
func (pp *PlayerPool) Discard(p *roster.Player) {
	pp.discarded[p.ID] = true
}

// Exhausted reports whether no player is left to call.
func (pp *PlayerPool) Exhausted() bool { return len(pp.Available()) == 0 }
