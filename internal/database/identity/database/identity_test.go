package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/wordowl-games/wordowl/internal/cache"
	"github.com/wordowl-games/wordowl/internal/database"
	"github.com/wordowl-games/wordowl/internal/database/identity/model"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewFromEnv(ctx, &database.Config{
		FilePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(ctx) })

	return db
}

func TestFetchNotFound(t *testing.T) {
	t.Parallel()

	identities := New(testDB(t), nil)

	if _, err := identities.Fetch(); !errors.Is(err, NotFoundErr) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreFetchRoundtrip(t *testing.T) {
	t.Parallel()

	identities := New(testDB(t), nil)

	want := model.Identity{
		APIKey:       "key-1",
		UserID:       "u1",
		Username:     "owl",
		DisplayName:  "Owl",
		DeviceName:   "kitchen",
		RegisteredAt: time.Now().Truncate(time.Second),
	}
	if err := identities.Store(want); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := identities.Fetch()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.APIKey != want.APIKey || got.DeviceName != want.DeviceName {
		t.Errorf("expected %#v got %#v", want, got)
	}
}

func TestFetchServedFromCache(t *testing.T) {
	t.Parallel()

	lru, err := cache.NewLRU(8)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	db := testDB(t)
	identities := New(db, lru)

	want := model.Identity{APIKey: "key-1", DeviceName: "kitchen"}
	if err := identities.Store(want); err != nil {
		t.Fatalf("store: %v", err)
	}

	// close the underlying db: a cache hit must still answer
	if err := db.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := identities.Fetch()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.APIKey != "key-1" {
		t.Errorf("expected cached identity, got %#v", got)
	}
}
