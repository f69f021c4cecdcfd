package calling

import (
	"context"
	"math/rand"

	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// SystemCaller picks a random candidate on the auction's behalf. Used when
// the league lets the system call players up instead of the teams.
type SystemCaller struct {
	id   string
	name string
}

func NewSystemCaller() *SystemCaller {
	return &SystemCaller{id: "system", name: "System"}
}

func (s *SystemCaller) ID() string   { return s.id }
func (s *SystemCaller) Name() string { return s.name }

func (s *SystemCaller) ChoosePlayer(_ context.Context, available []*roster.Player) (*roster.Player, error) {
	if len(available) == 0 {
		return nil, nil
	}
	return available[rand.Intn(len(available))], nil
}
