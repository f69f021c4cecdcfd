package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Player is a catalog record used to seed auction pools.
type Player struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Club      string    `db:"club"`
	CreatedAt time.Time `db:"created_at"`
}

// Auction is an auction lifecycle record.
type Auction struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Status     string     `db:"status"` // "created", "running", "finished"
	Reason     *string    `db:"reason"`
	CreatedAt  time.Time  `db:"created_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

// PlayerRepository defines player catalog persistence operations.
type PlayerRepository interface {
	Create(ctx context.Context, p *Player) error
	GetByID(ctx context.Context, id int) (*Player, error)
	List(ctx context.Context) ([]Player, error)
	ListByRole(ctx context.Context, role string) ([]Player, error)
}

// AuctionRepository defines auction record persistence operations.
type AuctionRepository interface {
	Create(ctx context.Context, a *Auction) error
	GetByID(ctx context.Context, id string) (*Auction, error)
	MarkRunning(ctx context.Context, id string) error
	Finish(ctx context.Context, id string, reason string) error
	List(ctx context.Context) ([]Auction, error)
}
