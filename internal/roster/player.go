package roster

import "fmt"

// Role is the position a player covers on the pitch.
type Role string

const (
	Goalkeeper Role = "goalkeeper"
	Defender   Role = "defender"
	Midfielder Role = "midfielder"
	Forward    Role = "forward"
)

// Roles lists all roles in the classic calling order.
var Roles = []Role{Goalkeeper, Defender, Midfielder, Forward}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

// Player is an auction subject. Immutable once created; assignment status
// lives in the pool, not here.
type Player struct {
	ID   int
	Name string
	Role Role
	Club string // real-world club the player belongs to
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Role, p.Club)
}
