package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jensholdgaard/fantadraft/internal/clock"
	"github.com/jensholdgaard/fantadraft/internal/store"
	"github.com/jensholdgaard/fantadraft/internal/store/postgres"
)

func TestAuctionRepo_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewAuctionRepo(db, clock.Real{})
	ctx := context.Background()

	a := &store.Auction{ID: "a1", Name: "Sunday League"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "created" {
		t.Errorf("Status = %q, want created", got.Status)
	}

	if err := repo.MarkRunning(ctx, "a1"); err != nil {
		t.Fatalf("MarkRunning: %v", err)
	}
	got, _ = repo.GetByID(ctx, "a1")
	if got.Status != "running" {
		t.Errorf("Status = %q, want running", got.Status)
	}

	if err := repo.Finish(ctx, "a1", "no_players"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, _ = repo.GetByID(ctx, "a1")
	if got.Status != "finished" {
		t.Errorf("Status = %q, want finished", got.Status)
	}
	if got.Reason == nil || *got.Reason != "no_players" {
		t.Errorf("Reason = %v, want no_players", got.Reason)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
}

func TestAuctionRepo_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewAuctionRepo(db, clock.Real{})
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
	if err := repo.MarkRunning(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("MarkRunning err = %v, want ErrNotFound", err)
	}
	if err := repo.Finish(ctx, "missing", "stopped"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Finish err = %v, want ErrNotFound", err)
	}
}

func TestAuctionRepo_List(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewAuctionRepo(db, clock.Real{})
	ctx := context.Background()

	for _, id := range []string{"a1", "a2"} {
		if err := repo.Create(ctx, &store.Auction{ID: id, Name: id}); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	auctions, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(auctions) != 2 {
		t.Fatalf("List returned %d auctions, want 2", len(auctions))
	}
}
