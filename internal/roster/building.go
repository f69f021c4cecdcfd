package roster

// TeamBuildingStrategy decides roster-completion and per-role capacity.
// It is consulted by the pool candidate builder, not by Team.AddPlayer.
type TeamBuildingStrategy interface {
	// CanAssign reports whether the team could still take p at the
	// given price under this strategy's slot rules.
	CanAssign(t *Team, p *Player, price int) bool
	// Complete reports whether the team's roster is done.
	Complete(t *Team) bool
	// RolesRemaining returns how many slots per role are still needed.
	RolesRemaining(t *Team) map[Role]int
}

// FixedMax caps each role at a fixed number of slots; a roster is complete
// when every cap is reached.
type FixedMax struct {
	Slots map[Role]int
}

func (s FixedMax) CanAssign(t *Team, p *Player, price int) bool {
	return t.CountByRole(p.Role) < s.Slots[p.Role] && t.Remaining() >= price
}

func (s FixedMax) Complete(t *Team) bool {
	for role, max := range s.Slots {
		if t.CountByRole(role) < max {
			return false
		}
	}
	return true
}

func (s FixedMax) RolesRemaining(t *Team) map[Role]int {
	out := make(map[Role]int, len(s.Slots))
	for role, max := range s.Slots {
		if n := max - t.CountByRole(role); n > 0 {
			out[role] = n
		} else {
			out[role] = 0
		}
	}
	return out
}

// MinMax enforces a minimum and a maximum per role; complete once every
// minimum is met without exceeding any maximum.
type MinMax struct {
	Min map[Role]int
	Max map[Role]int
}

func (s MinMax) CanAssign(t *Team, p *Player, price int) bool {
	return t.CountByRole(p.Role) < s.Max[p.Role] && t.Remaining() >= price
}

func (s MinMax) Complete(t *Team) bool {
	for role, min := range s.Min {
		if t.CountByRole(role) < min {
			return false
		}
	}
	for role, max := range s.Max {
		if t.CountByRole(role) > max {
			return false
		}
	}
	return true
}

func (s MinMax) RolesRemaining(t *Team) map[Role]int {
	out := make(map[Role]int, len(s.Min))
	for role, min := range s.Min {
		if n := min - t.CountByRole(role); n > 0 {
			out[role] = n
		} else {
			out[role] = 0
		}
	}
	return out
}

// FreeBuild places no slot constraints; the auction ends only when the pool
// runs out or the host stops it.
type FreeBuild struct{}

func (FreeBuild) CanAssign(t *Team, _ *Player, price int) bool {
	return t.Remaining() >= price
}

func (FreeBuild) Complete(*Team) bool { return false }

func (FreeBuild) RolesRemaining(*Team) map[Role]int { return map[Role]int{} }
