package auction

import (
	"fmt"

	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/calling"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Participant is anyone present in the auction room. Only a TeamParticipant
// carries the caller/bidder capabilities bound to a team.
type Participant interface {
	ID() string
	Name() string
	Label() string
}

// Guest observes the auction without taking part.
type Guest struct {
	id   string
	name string
}

func NewGuest(id, name string) *Guest { return &Guest{id: id, name: name} }

func (g *Guest) ID() string    { return g.id }
func (g *Guest) Name() string  { return g.name }
func (g *Guest) Label() string { return fmt.Sprintf("Guest: %s", g.name) }

// Host runs the auction without owning a team.
type Host struct {
	id   string
	name string
}

func NewHost(id, name string) *Host { return &Host{id: id, name: name} }

func (h *Host) ID() string    { return h.id }
func (h *Host) Name() string  { return h.name }
func (h *Host) Label() string { return fmt.Sprintf("Host: %s", h.name) }

// TeamParticipant binds a team to its caller and bidder capabilities. The
// capabilities are usually one remote participant actor wearing both hats.
type TeamParticipant struct {
	id     string
	team   *roster.Team
	caller calling.Caller
	bidder bidding.Bidder
}

func NewTeamParticipant(id string, team *roster.Team, caller calling.Caller, bidder bidding.Bidder) *TeamParticipant {
	return &TeamParticipant{id: id, team: team, caller: caller, bidder: bidder}
}

func (p *TeamParticipant) ID() string             { return p.id }
func (p *TeamParticipant) Name() string           { return p.team.Name }
func (p *TeamParticipant) Label() string          { return fmt.Sprintf("Team: %s", p.team.Name) }
func (p *TeamParticipant) Team() *roster.Team     { return p.team }
func (p *TeamParticipant) Caller() calling.Caller { return p.caller }
func (p *TeamParticipant) Bidder() bidding.Bidder { return p.bidder }
