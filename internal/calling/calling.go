package calling

import (
	"context"
	"math/rand"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Caller is the party granted the right to put a player up for auction.
// ChoosePlayer suspends until the caller answers, the context is cancelled,
// or the caller disconnects; a nil player means "no selection".
type Caller interface {
	ID() string
	Name() string
	ChoosePlayer(ctx context.Context, available []*roster.Player) (*roster.Player, error)
}

// Direction is the rotation of a sequential calling order.
type Direction string

const (
	Clockwise        Direction = "clockwise"
	CounterClockwise Direction = "counter"
)

// Strategy decides which caller(s) get to call the next player. A strategy
// returning more than one caller expects them to be raced.
type Strategy interface {
	NextCallers() []Caller
}

// Sequential rotates through a fixed ordered list of callers, one per turn,
// wrapping around. Counter-clockwise walks the list backwards.
type Sequential struct {
	callers   []Caller
	idx       int
	step      int
	randStart bool
	started   bool
}

// NewSequential creates a round-robin strategy. With randomStart the first
// invocation begins at a random offset instead of the head of the list.
func NewSequential(callers []Caller, dir Direction, randomStart bool) *Sequential {
	step := 1
	if dir == CounterClockwise {
		step = -1
	}
	return &Sequential{callers: callers, step: step, randStart: randomStart}
}

// NextCallers advances the rotation and returns the single caller whose
// turn it is. Returns nil when no callers are registered.
func (s *Sequential) NextCallers() []Caller {
	n := len(s.callers)
	if n == 0 {
		return nil
	}
	if !s.started {
		s.started = true
		if s.randStart {
			s.idx = rand.Intn(n)
		} else if s.step > 0 {
			s.idx = 0
		} else {
			s.idx = n - 1
		}
	} else {
		s.idx = ((s.idx+s.step)%n + n) % n
	}
	return []Caller{s.callers[s.idx]}
}

// UpdateCallers replaces the caller list and resets the rotation.
func (s *Sequential) UpdateCallers(callers []Caller) {
	s.callers = callers
	s.started = false
}

// Callers returns a copy of the current caller list.
func (s *Sequential) Callers() []Caller {
	out := make([]Caller, len(s.callers))
	copy(out, s.callers)
	return out
}

// BroadcastRace hands the turn to every eligible caller at once; the
// auction races them and the first non-nil selection wins.
type BroadcastRace struct {
	callers []Caller
}

func NewBroadcastRace(callers []Caller) *BroadcastRace {
	return &BroadcastRace{callers: callers}
}

func (b *BroadcastRace) NextCallers() []Caller {
	out := make([]Caller, len(b.callers))
	copy(out, b.callers)
	return out
}

// UpdateCallers replaces the caller set.
func (b *BroadcastRace) UpdateCallers(callers []Caller) {
	b.callers = callers
}
