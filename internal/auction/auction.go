package auction

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jensholdgaard/fantadraft/internal/bidding"
	"github.com/jensholdgaard/fantadraft/internal/calling"
	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/event"
	"github.com/jensholdgaard/fantadraft/internal/pool"
	"github.com/jensholdgaard/fantadraft/internal/roster"
)

// Errors returned by auction lifecycle operations.
var (
	ErrAlreadyStarted = errors.New("auction already started")
	ErrNotStarted     = errors.New("auction not started")
)

// FinishReason explains why an auction terminated.
type FinishReason string

const (
	ReasonNoPlayers FinishReason = "no_players"
	ReasonNoCallers FinishReason = "no_callers"
	ReasonStopped   FinishReason = "stopped"
)

// UnsoldPolicy is the disposition of a player nobody bought.
type UnsoldPolicy string

const (
	// UnsoldReturn puts the player back in the pool for a later turn.
	UnsoldReturn UnsoldPolicy = "return"
	// UnsoldDiscard removes the player from the auction entirely.
	UnsoldDiscard UnsoldPolicy = "discard"
)

// Options configures a new Auction. Teams, Pool, Market, Calling and
// Bidding are required; everything else has a sensible default.
type Options struct {
	ID   string
	Name string

	Teams   []*roster.Team
	Pool    *pool.PlayerPool
	Market  pool.MarketRule
	Calling calling.Strategy
	Bidding bidding.Strategy
	// Builder prunes the candidate set per turn. Nil means every
	// available player is a candidate.
	Builder *pool.RoleSequentialBuilder
	Unsold  UnsoldPolicy

	// Events persists published events for audit. Nil disables
	// persistence; live delivery through the bus is unaffected.
	Events event.Store
	Bus    *event.Bus

	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Clock          clock.Clock
}

// Auction is the top-level orchestrator. It owns its teams, player pool and
// turn history for its whole lifetime; the turn loop is the single writer
// of pool and team state.
type Auction struct {
	ID   string
	Name string

	mu           sync.Mutex
	started      bool
	finished     bool
	reason       FinishReason
	participants []Participant
	bidders      []bidding.Bidder
	dead         map[string]bool // caller ids dropped after a failed ask
	declines     int             // consecutive declined solicitations
	cancel       context.CancelFunc

	teams   []*roster.Team
	pool    *pool.PlayerPool
	market  pool.MarketRule
	calling calling.Strategy
	bidding bidding.Strategy
	builder *pool.RoleSequentialBuilder
	unsold  UnsoldPolicy

	turns   []*Turn
	current *Turn

	bus     *event.Bus
	events  event.Store
	pending []event.Event
	version int

	logger *slog.Logger
	tracer trace.Tracer
	clock  clock.Clock
}

// New assembles an auction from its options.
func New(opts Options) *Auction {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus(logger)
	}
	unsold := opts.Unsold
	if unsold == "" {
		unsold = UnsoldReturn
	}
	return &Auction{
		ID:      opts.ID,
		Name:    opts.Name,
		teams:   opts.Teams,
		pool:    opts.Pool,
		market:  opts.Market,
		calling: opts.Calling,
		bidding: opts.Bidding,
		builder: opts.Builder,
		unsold:  unsold,
		bus:     bus,
		events:  opts.Events,
		logger:  logger,
		tracer:  tp.Tracer("github.com/jensholdgaard/fantadraft/internal/auction"),
		clock:   clk,
	}
}

// Bus returns the auction's event bus for subscribers.
func (a *Auction) Bus() *event.Bus { return a.bus }

// Teams returns the auction's teams in creation order.
func (a *Auction) Teams() []*roster.Team { return a.teams }

// Pool returns the auction's player pool.
func (a *Auction) Pool() *pool.PlayerPool { return a.pool }

// Turns returns the turn history so far.
func (a *Auction) Turns() []*Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Turn, len(a.turns))
	copy(out, a.turns)
	return out
}

// CurrentTurn returns the turn in progress, or nil between turns.
func (a *Auction) CurrentTurn() *Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

type callerUpdater interface {
	UpdateCallers([]calling.Caller)
}

// Join adds a participant to the auction. A TeamParticipant also registers
// its bidder and refreshes the calling strategy's caller list.
func (a *Auction) Join(ctx context.Context, p Participant) {
	a.mu.Lock()
	a.participants = append(a.participants, p)
	teamID := 0
	if tp, ok := p.(*TeamParticipant); ok {
		a.bidders = append(a.bidders, tp.Bidder())
		teamID = tp.Team().ID
		if u, ok := a.calling.(callerUpdater); ok {
			u.UpdateCallers(a.callerList())
		}
	}
	a.mu.Unlock()

	a.emit(ctx, event.ParticipantJoined, event.ParticipantJoinedData{
		ParticipantID: p.ID(),
		Name:          p.Name(),
		TeamID:        teamID,
	})
	a.logger.InfoContext(ctx, "participant joined",
		slog.String("auction_id", a.ID),
		slog.String("participant", p.Label()),
	)
}

// callerList collects the caller capability of every team participant
// still in rotation, in join order. Caller must hold a.mu.
func (a *Auction) callerList() []calling.Caller {
	var out []calling.Caller
	for _, p := range a.participants {
		if tp, ok := p.(*TeamParticipant); ok {
			if a.dead[tp.Caller().ID()] {
				continue
			}
			out = append(out, tp.Caller())
		}
	}
	return out
}

// dropCallers removes callers whose asks failed from the rotation. The
// auction keeps going with whoever is left; their teams can still bid.
func (a *Auction) dropCallers(ctx context.Context, failed []calling.Caller) {
	a.mu.Lock()
	if a.dead == nil {
		a.dead = make(map[string]bool)
	}
	for _, c := range failed {
		a.dead[c.ID()] = true
	}
	if u, ok := a.calling.(callerUpdater); ok {
		u.UpdateCallers(a.callerList())
	}
	a.mu.Unlock()

	for _, c := range failed {
		a.logger.WarnContext(ctx, "caller dropped from rotation",
			slog.String("auction_id", a.ID),
			slog.String("caller", c.ID()),
		)
	}
}

// Start transitions created -> started. Calling it twice returns
// ErrAlreadyStarted with no state change.
func (a *Auction) Start(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "Auction.Start",
		trace.WithAttributes(attribute.String("auction.id", a.ID)),
	)
	defer span.End()

	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.started = true
	a.mu.Unlock()

	a.emit(ctx, event.AuctionStarted, event.AuctionStartedData{
		Name:  a.Name,
		Teams: len(a.teams),
	})
	a.flush(ctx)

	a.logger.InfoContext(ctx, "auction started",
		slog.String("auction_id", a.ID),
		slog.String("name", a.Name),
		slog.Int("teams", len(a.teams)),
	)
	return nil
}

// Run drives the turn loop until the pool is exhausted, no caller selects a
// player, or the auction is stopped. Must be called after Start.
func (a *Auction) Run(ctx context.Context) (FinishReason, error) {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return "", ErrNotStarted
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.mu.Unlock()
	defer a.cancel()

	ctx, span := a.tracer.Start(ctx, "Auction.Run",
		trace.WithAttributes(attribute.String("auction.id", a.ID)),
	)
	defer span.End()

	for {
		if ctx.Err() != nil {
			return a.finish(context.WithoutCancel(ctx), ReasonStopped), nil
		}
		reason, done := a.playTurn(ctx)
		if done {
			return a.finish(context.WithoutCancel(ctx), reason), nil
		}
	}
}

// Stop cancels the turn loop. Safe to call from any goroutine.
func (a *Auction) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Finished reports whether the auction has terminated, and why.
func (a *Auction) Finished() (bool, FinishReason) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finished, a.reason
}

// playTurn runs one call/bid/assign cycle. It returns done=true with a
// finish reason when the auction should terminate.
func (a *Auction) playTurn(ctx context.Context) (FinishReason, bool) {
	ctx, span := a.tracer.Start(ctx, "Auction.playTurn",
		trace.WithAttributes(attribute.String("auction.id", a.ID)),
	)
	defer span.End()

	a.mu.Lock()
	callers := a.calling.NextCallers()
	bidders := make([]bidding.Bidder, len(a.bidders))
	copy(bidders, a.bidders)
	turnNumber := len(a.turns) + 1
	a.mu.Unlock()

	if len(callers) == 0 {
		return ReasonNoCallers, true
	}

	available := a.availablePlayers()
	candidates := available
	if a.builder != nil {
		candidates = a.builder.Candidates(available, a.teams)
	}
	if len(candidates) == 0 {
		return ReasonNoPlayers, true
	}

	caller, player, failed := calling.Race(ctx, callers, candidates)
	if len(failed) > 0 {
		a.dropCallers(ctx, failed)
	}
	if player == nil {
		if ctx.Err() != nil {
			return ReasonStopped, true
		}
		// A single declined or failed turn never ends the auction on its
		// own; the rotation moves on. Terminate only when no caller is
		// left or a whole rotation produced nothing but declines.
		a.mu.Lock()
		a.declines += len(callers) - len(failed)
		declines := a.declines
		remaining := len(a.callerList())
		a.mu.Unlock()
		if remaining == 0 || declines >= remaining {
			return ReasonNoCallers, true
		}
		return "", false
	}

	a.mu.Lock()
	a.declines = 0
	a.mu.Unlock()

	turn := newTurn(turnNumber)
	turn.Caller = caller
	turn.Player = player
	turn.Status = TurnInProgress

	a.mu.Lock()
	a.turns = append(a.turns, turn)
	a.current = turn
	a.mu.Unlock()

	a.emit(ctx, event.TurnStarted, event.TurnStartedData{
		TurnNumber: turn.Number,
		CallerID:   caller.ID(),
		CallerName: caller.Name(),
	})
	a.emit(ctx, event.PlayerCalled, event.PlayerCalledData{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Role:       string(player.Role),
	})

	// Pre-filter to bidders whose team could still take this player,
	// then re-validate each accepted bid: eligibility can go stale
	// while asks are in flight.
	eligible := a.eligibleBidders(bidders, player)
	revalidate := func(team *roster.Team, p *roster.Player, amount int) bool {
		return a.market.Available(p) && a.pool.IsAvailableForTeam(p, team) && team.CanBuy(p, amount)
	}
	observe := func(b bidding.Bid) {
		turn.Bids = append(turn.Bids, b)
		a.emit(ctx, event.BidPlaced, event.BidPlacedData{
			TeamID:   b.Team.ID,
			TeamName: b.Team.Name,
			Amount:   b.Amount,
		})
	}

	winner, err := a.bidding.Run(ctx, player, eligible, revalidate, observe)
	if err != nil {
		a.logger.ErrorContext(ctx, "bidding round failed",
			slog.String("auction_id", a.ID),
			slog.Int("turn", turn.Number),
			slog.Any("error", err),
		)
		winner = nil
	}

	if winner != nil && a.pool.AssignToTeam(player, winner.Team, winner.Amount) {
		a.market.RegisterAssignment(winner.Team, player)
		turn.Winner = winner
		turn.Status = TurnComplete
		a.emit(ctx, event.PlayerAssigned, event.PlayerAssignedData{
			TeamID:     winner.Team.ID,
			TeamName:   winner.Team.Name,
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Amount:     winner.Amount,
		})
		a.logger.InfoContext(ctx, "player assigned",
			slog.String("auction_id", a.ID),
			slog.Int("turn", turn.Number),
			slog.String("player", player.Name),
			slog.String("team", winner.Team.Name),
			slog.Int("amount", winner.Amount),
		)
	} else {
		turn.Status = TurnPassed
		if a.unsold == UnsoldDiscard {
			a.pool.Discard(player)
		}
		a.logger.InfoContext(ctx, "player unsold",
			slog.String("auction_id", a.ID),
			slog.Int("turn", turn.Number),
			slog.String("player", player.Name),
			slog.String("disposition", string(a.unsold)),
		)
	}

	a.flush(ctx)

	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	return "", false
}

// availablePlayers filters pool availability through the auction-wide
// market cap. A player at the global cap stops being callable even when
// the pool itself allows duplicates.
func (a *Auction) availablePlayers() []*roster.Player {
	var out []*roster.Player
	for _, p := range a.pool.Available() {
		if a.market.Available(p) {
			out = append(out, p)
		}
	}
	return out
}

// eligibleBidders pre-filters bidders by per-team availability.
func (a *Auction) eligibleBidders(bidders []bidding.Bidder, player *roster.Player) []bidding.Bidder {
	var out []bidding.Bidder
	for _, b := range bidders {
		if a.pool.IsAvailableForTeam(player, b.Team()) {
			out = append(out, b)
		}
	}
	return out
}

func (a *Auction) finish(ctx context.Context, reason FinishReason) FinishReason {
	a.mu.Lock()
	a.finished = true
	a.reason = reason
	turns := len(a.turns)
	a.mu.Unlock()

	a.emit(ctx, event.AuctionFinished, event.AuctionFinishedData{
		Reason: string(reason),
		Turns:  turns,
	})
	a.flush(ctx)

	a.logger.InfoContext(ctx, "auction finished",
		slog.String("auction_id", a.ID),
		slog.String("reason", string(reason)),
		slog.Int("turns", turns),
	)
	return reason
}

// emit records an event in the aggregate's pending buffer and publishes it
// to the bus. Publication is synchronous and fire-and-forget.
func (a *Auction) emit(_ context.Context, t event.Type, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = json.RawMessage(`{}`)
	}
	a.mu.Lock()
	a.version++
	e := event.Event{
		AggregateID: a.ID,
		Type:        t,
		Data:        data,
		Version:     a.version,
		CreatedAt:   a.clock.Now().UTC(),
	}
	a.pending = append(a.pending, e)
	a.mu.Unlock()

	a.bus.Publish(e)
}

// flush appends pending events to the store, best effort: audit persistence
// never aborts the auction loop.
func (a *Auction) flush(ctx context.Context) {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	if a.events == nil || len(pending) == 0 {
		return
	}
	if err := a.events.Append(ctx, pending...); err != nil {
		a.logger.ErrorContext(ctx, "failed to persist auction events",
			slog.String("auction_id", a.ID),
			slog.Any("error", err),
		)
	}
}
