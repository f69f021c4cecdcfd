package auction

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/config"
	"github.com/jensholdgaard/fantadraft/internal/event"
	"github.com/jensholdgaard/fantadraft/internal/roster"
	"github.com/jensholdgaard/fantadraft/internal/store"
)

// Manager tracks all auctions in the process and coordinates their
// lifecycle against the store.
type Manager struct {
	mu       sync.RWMutex
	auctions map[string]*Auction

	events  event.Store
	players store.PlayerRepository
	records store.AuctionRepository
	logger  *slog.Logger
	tracer  trace.Tracer
	tp      trace.TracerProvider
	clock   clock.Clock
}

// NewManager creates a new auction Manager.
func NewManager(events event.Store, players store.PlayerRepository, records store.AuctionRepository, logger *slog.Logger, tp trace.TracerProvider, clk clock.Clock) *Manager {
	return &Manager{
		auctions: make(map[string]*Auction),
		events:   events,
		players:  players,
		records:  records,
		logger:   logger,
		tracer:   tp.Tracer("github.com/jensholdgaard/fantadraft/internal/auction"),
		tp:       tp,
		clock:    clk,
	}
}

// CreateAuction assembles a new auction from cfg, seeds its pool from the
// player catalog, and tracks it.
func (m *Manager) CreateAuction(ctx context.Context, cfg config.AuctionConfig) (*Auction, error) {
	ctx, span := m.tracer.Start(ctx, "Manager.CreateAuction",
		trace.WithAttributes(
			attribute.String("auction.name", cfg.Name),
			attribute.Int("auction.teams", cfg.Teams),
		),
	)
	defer span.End()

	id := uuid.NewString()
	opts, err := Assemble(id, cfg)
	if err != nil {
		return nil, fmt.Errorf("assembling auction: %w", err)
	}
	opts.Events = m.events
	opts.Logger = m.logger
	opts.TracerProvider = m.tp
	opts.Clock = m.clock

	players, err := m.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading player catalog: %w", err)
	}
	for i := range players {
		p := players[i]
		opts.Pool.AddPlayers(&roster.Player{
			ID:   p.ID,
			Name: p.Name,
			Role: roster.Role(p.Role),
			Club: p.Club,
		})
	}

	a := New(opts)

	if m.records != nil {
		if err := m.records.Create(ctx, &store.Auction{ID: id, Name: cfg.Name}); err != nil {
			return nil, fmt.Errorf("persisting auction record: %w", err)
		}
	}

	m.mu.Lock()
	m.auctions[id] = a
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "auction created",
		slog.String("auction_id", id),
		slog.String("name", cfg.Name),
		slog.Int("pool_size", len(players)),
	)
	return a, nil
}

// Get returns a tracked auction by id.
func (m *Manager) Get(id string) (*Auction, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.auctions[id]
	return a, ok
}

// List returns all tracked auctions.
func (m *Manager) List() []*Auction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Auction, 0, len(m.auctions))
	for _, a := range m.auctions {
		out = append(out, a)
	}
	return out
}

// Remove drops a tracked auction. The record and its events stay in the
// store.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.auctions[id]; !ok {
		return false
	}
	delete(m.auctions, id)
	return true
}

// AuctionEvents returns the persisted event trail of an auction, oldest
// first, optionally filtered to a single event type. Returns nothing when
// event persistence is disabled.
func (m *Manager) AuctionEvents(ctx context.Context, id string, typ event.Type) ([]event.Event, error) {
	if _, ok := m.Get(id); !ok {
		return nil, fmt.Errorf("auction %s not found", id)
	}
	if m.events == nil {
		return nil, nil
	}
	if typ != "" {
		evs, err := m.events.LoadByType(ctx, typ)
		if err != nil {
			return nil, fmt.Errorf("loading auction events: %w", err)
		}
		out := evs[:0:0]
		for _, e := range evs {
			if e.AggregateID == id {
				out = append(out, e)
			}
		}
		return out, nil
	}
	evs, err := m.events.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading auction events: %w", err)
	}
	return evs, nil
}

// RunAuction starts an auction and drives its turn loop to completion,
// updating the store record at each lifecycle edge.
func (m *Manager) RunAuction(ctx context.Context, id string) (FinishReason, error) {
	ctx, span := m.tracer.Start(ctx, "Manager.RunAuction",
		trace.WithAttributes(attribute.String("auction_id", id)),
	)
	defer span.End()

	a, ok := m.Get(id)
	if !ok {
		return "", fmt.Errorf("auction %s not found", id)
	}

	if err := a.Start(ctx); err != nil {
		return "", err
	}
	if m.records != nil {
		if err := m.records.MarkRunning(ctx, id); err != nil {
			m.logger.ErrorContext(ctx, "failed to mark auction running", slog.Any("error", err))
		}
	}

	reason, err := a.Run(ctx)
	if err != nil {
		return "", err
	}

	if m.records != nil {
		if err := m.records.Finish(ctx, id, string(reason)); err != nil {
			m.logger.ErrorContext(ctx, "failed to mark auction finished", slog.Any("error", err))
		}
	}
	return reason, nil
}
