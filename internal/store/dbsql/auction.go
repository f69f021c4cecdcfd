package dbsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/store"
)

// AuctionRepo implements store.AuctionRepository using database/sql.
type AuctionRepo struct {
	db  *sql.DB
	clk clock.Clock
}

// NewAuctionRepo returns a new AuctionRepo.
func NewAuctionRepo(db *sql.DB, clk clock.Clock) *AuctionRepo {
	return &AuctionRepo{db: db, clk: clk}
}

func (r *AuctionRepo) Create(ctx context.Context, a *store.Auction) error {
	a.CreatedAt = r.clk.Now().UTC()
	if a.Status == "" {
		a.Status = "created"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auctions (id, name, status, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating auction record: %w", err)
	}
	return nil
}

func (r *AuctionRepo) GetByID(ctx context.Context, id string) (*store.Auction, error) {
	a := &store.Auction{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, status, reason, created_at, finished_at FROM auctions WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Status, &a.Reason, &a.CreatedAt, &a.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting auction by id: %w", err)
	}
	return a, nil
}

func (r *AuctionRepo) MarkRunning(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET status = 'running' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking auction running: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("auction %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *AuctionRepo) Finish(ctx context.Context, id string, reason string) error {
	now := r.clk.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET status = 'finished', reason = $1, finished_at = $2 WHERE id = $3`,
		reason, now, id,
	)
	if err != nil {
		return fmt.Errorf("finishing auction: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("auction %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *AuctionRepo) List(ctx context.Context) ([]store.Auction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, reason, created_at, finished_at FROM auctions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing auctions: %w", err)
	}
	defer rows.Close()

	var auctions []store.Auction
	for rows.Next() {
		var a store.Auction
		if err := rows.Scan(&a.ID, &a.Name, &a.Status, &a.Reason, &a.CreatedAt, &a.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning auction row: %w", err)
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}
