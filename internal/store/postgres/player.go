package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/store"
)

// PlayerRepo implements store.PlayerRepository with sqlx.
type PlayerRepo struct {
	db  *sqlx.DB
	clk clock.Clock
}

// NewPlayerRepo returns a new PlayerRepo.
func NewPlayerRepo(db *sqlx.DB, clk clock.Clock) *PlayerRepo {
	return &PlayerRepo{db: db, clk: clk}
}

func (r *PlayerRepo) Create(ctx context.Context, p *store.Player) error {
	query := `INSERT INTO players (name, role, club, created_at)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id`
	p.CreatedAt = r.clk.Now().UTC()
	return r.db.QueryRowContext(ctx, query, p.Name, p.Role, p.Club, p.CreatedAt).Scan(&p.ID)
}

func (r *PlayerRepo) GetByID(ctx context.Context, id int) (*store.Player, error) {
	var p store.Player
	err := r.db.GetContext(ctx, &p, `SELECT * FROM players WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting player by id: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepo) List(ctx context.Context) ([]store.Player, error) {
	var players []store.Player
	err := r.db.SelectContext(ctx, &players, `SELECT * FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

func (r *PlayerRepo) ListByRole(ctx context.Context, role string) ([]store.Player, error) {
	var players []store.Player
	err := r.db.SelectContext(ctx, &players, `SELECT * FROM players WHERE role = $1 ORDER BY id`, role)
	if err != nil {
		return nil, fmt.Errorf("listing players by role: %w", err)
	}
	return players, nil
}
