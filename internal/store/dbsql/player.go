package dbsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/store"
)

// PlayerRepo implements store.PlayerRepository using database/sql.
type PlayerRepo struct {
	db  *sql.DB
	clk clock.Clock
}

// NewPlayerRepo returns a new PlayerRepo.
func NewPlayerRepo(db *sql.DB, clk clock.Clock) *PlayerRepo {
	return &PlayerRepo{db: db, clk: clk}
}

func (r *PlayerRepo) Create(ctx context.Context, p *store.Player) error {
	p.CreatedAt = r.clk.Now().UTC()
	return r.db.QueryRowContext(ctx,
		`INSERT INTO players (name, role, club, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Name, p.Role, p.Club, p.CreatedAt,
	).Scan(&p.ID)
}

func (r *PlayerRepo) GetByID(ctx context.Context, id int) (*store.Player, error) {
	p := &store.Player{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, role, club, created_at FROM players WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Role, &p.Club, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting player by id: %w", err)
	}
	return p, nil
}

func (r *PlayerRepo) List(ctx context.Context) ([]store.Player, error) {
	return r.queryPlayers(ctx, `SELECT id, name, role, club, created_at FROM players ORDER BY id`)
}

func (r *PlayerRepo) ListByRole(ctx context.Context, role string) ([]store.Player, error) {
	return r.queryPlayers(ctx, `SELECT id, name, role, club, created_at FROM players WHERE role = $1 ORDER BY id`, role)
}

func (r *PlayerRepo) queryPlayers(ctx context.Context, query string, args ...any) ([]store.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var players []store.Player
	for rows.Next() {
		var p store.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Club, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
