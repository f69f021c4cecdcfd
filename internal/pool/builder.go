package pool

import "github.com/jensholdgaard/fantadraft/internal/roster"

// RoleSequentialBuilder offers only players of the current role whose
// assignment is still possible for at least one team, advancing to the next
// role once none remain. All of one role is exhausted (from an assignable
// point of view) before the next role begins, so the auction never stalls
// offering players no team could legally take.
type RoleSequentialBuilder struct {
	order    []roster.Role
	idx      int
	building roster.TeamBuildingStrategy
}

// NewRoleSequentialBuilder builds candidates following the given role order.
// A nil or empty order falls back to the classic calling order.
func NewRoleSequentialBuilder(order []roster.Role, building roster.TeamBuildingStrategy) *RoleSequentialBuilder {
	if len(order) == 0 {
		order = roster.Roles
	}
	return &RoleSequentialBuilder{order: order, building: building}
}

// CurrentRole returns the role currently being offered, or "" when every
// role has been exhausted.
func (b *RoleSequentialBuilder) CurrentRole() roster.Role {
	if b.idx >= len(b.order) {
		return ""
	}
	return b.order[b.idx]
}

// Candidates prunes available down to players of the current role that at
// least one team could still be assigned. Probes assignability at the
// minimum price of 1.
func (b *RoleSequentialBuilder) Candidates(available []*roster.Player, teams []*roster.Team) []*roster.Player {
	for b.idx < len(b.order) {
		role := b.order[b.idx]
		var valid []*roster.Player
		for _, p := range available {
			if p.Role != role {
				continue
			}
			for _, t := range teams {
				if b.building.CanAssign(t, p, 1) {
					valid = append(valid, p)
					break
				}
			}
		}
		if len(valid) > 0 {
			return valid
		}
		b.idx++
	}
	return nil
}
