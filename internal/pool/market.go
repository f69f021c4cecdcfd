package pool

import "github.com/jensholdgaard/fantadraft/internal/roster"

// MarketRule tracks global availability of a player across the whole
// auction, independent of any single team's ownership rules.
type MarketRule interface {
	Available(p *roster.Player) bool
	RegisterAssignment(t *roster.Team, p *roster.Player)
}

// UniqueMarket allows each player to be sold once, auction-wide.
type UniqueMarket struct {
	sold map[int]bool
}

func NewUniqueMarket() *UniqueMarket {
	return &UniqueMarket{sold: make(map[int]bool)}
}

func (m *UniqueMarket) Available(p *roster.Player) bool { return !m.sold[p.ID] }

func (m *UniqueMarket) RegisterAssignment(_ *roster.Team, p *roster.Player) {
	m.sold[p.ID] = true
}

// MultiCopyMarket allows each player to be sold up to max times, auction-wide.
type MultiCopyMarket struct {
	max    int
	counts map[int]int
}

func NewMultiCopyMarket(max int) *MultiCopyMarket {
	return &MultiCopyMarket{max: max, counts: make(map[int]int)}
}

func (m *MultiCopyMarket) Available(p *roster.Player) bool {
	return m.counts[p.ID] < m.max
}

func (m *MultiCopyMarket) RegisterAssignment(_ *roster.Team, p *roster.Player) {
	m.counts[p.ID]++
}

// AvailableForAnyTeam reports whether p is globally available and at least
// one team could still own it.
func AvailableForAnyTeam(rule MarketRule, p *roster.Player, teams []*roster.Team) bool {
	if !rule.Available(p) {
		return false
	}
	for _, t := range teams {
		if t.CanBuy(p, 0) {
			return true
		}
	}
	return false
}
