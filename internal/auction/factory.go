package auction

import (
	"fmt"

	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/calling"
	"github.com/jensholdgaard/fantadraft/internal/config"
	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Assemble builds the teams, pool, policies and strategies an auction needs
// from its configuration. Callers join later; the calling strategy starts
// with an empty caller list.
func Assemble(id string, cfg config.AuctionConfig) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}

	var ownership roster.OwnershipPolicy
	switch cfg.Ownership {
	case "no-duplicates":
		ownership = roster.NoDuplicates{}
	case "max-copies":
		ownership = roster.MaxCopies{Max: cfg.MaxCopies}
	}

	var budget roster.BudgetStrategy
	switch cfg.Budget {
	case "limited":
		budget = roster.LimitedBudget{}
	case "unlimited":
		budget = roster.UnlimitedBudget{}
	}

	var building roster.TeamBuildingStrategy
	switch cfg.TeamBuilding {
	case "fixed-max":
		slots, err := roleMap(cfg.RoleSlots)
		if err != nil {
			return Options{}, fmt.Errorf("role_slots: %w", err)
		}
		building = roster.FixedMax{Slots: slots}
	case "min-max":
		min, err := roleMap(cfg.RoleMin)
		if err != nil {
			return Options{}, fmt.Errorf("role_min: %w", err)
		}
		max, err := roleMap(cfg.RoleSlots)
		if err != nil {
			return Options{}, fmt.Errorf("role_slots: %w", err)
		}
		building = roster.MinMax{Min: min, Max: max}
	case "free":
		building = roster.FreeBuild{}
	}

	teams := make([]*roster.Team, 0, cfg.Teams)
	for i := 1; i <= cfg.Teams; i++ {
		teams = append(teams, roster.NewTeam(i, fmt.Sprintf("Team %d", i), cfg.InitialBudget, ownership, budget))
	}

	var market pool.MarketRule
	allowDuplicates := false
	switch cfg.Market {
	case "unique":
		market = pool.NewUniqueMarket()
	case "multi-copy":
		market = pool.NewMultiCopyMarket(cfg.MarketCopies)
		allowDuplicates = true
	}

	order, err := roleOrder(cfg.RoleOrder)
	if err != nil {
		return Options{}, fmt.Errorf("role_order: %w", err)
	}

	var caller calling.Strategy
	switch cfg.Calling {
	case "sequential":
		caller = calling.NewSequential(nil, calling.Direction(cfg.Direction), cfg.RandomStart)
	case "broadcast-race":
		caller = calling.NewBroadcastRace(nil)
	}

	var bids bidding.Strategy
	switch cfg.Bidding {
	case "free":
		bids = &bidding.Free{Market: market, AskTimeout: cfg.AskTimeout}
	case "closed-sealed":
		bids = &bidding.Sealed{Market: market, AskTimeout: cfg.AskTimeout}
	case "raise-or-pass":
		bids = &bidding.RaiseOrPass{Market: market, MinRaise: cfg.MinRaise, AskTimeout: cfg.AskTimeout}
	}

	return Options{
		ID:      id,
		Name:    cfg.Name,
		Teams:   teams,
		Pool:    pool.New(allowDuplicates),
		Market:  market,
		Calling: caller,
		Bidding: bids,
		Builder: pool.NewRoleSequentialBuilder(order, building),
		Unsold:  UnsoldPolicy(cfg.Unsold),
	}, nil
}

func roleMap(in map[string]int) (map[roster.Role]int, error) {
	out := make(map[roster.Role]int, len(in))
	for name, n := range in {
		role := roster.Role(name)
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		out[role] = n
	}
	return out, nil
}

func roleOrder(in []string) ([]roster.Role, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]roster.Role, 0, len(in))
	for _, name := range in {
		role := roster.Role(name)
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		out = append(out, role)
	}
	return out, nil
}
