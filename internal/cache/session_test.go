package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (context.Context, *Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	ctx := context.Background()
	c, err := New(ctx, "redis://"+mr.Addr(), time.Minute)
	if err != nil {
		t.Fatalf("connect cache: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	return ctx, c, mr
}

func TestSessionCache_RoundTrip(t *testing.T) {
	ctx, c, _ := newTestCache(t)

	sess := CachedSession{UserID: "user-1", Email: "ex@mail.com"}
	if err := c.SetSession(ctx, "digest-a", sess); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	cached := c.GetSession(ctx, "digest-a")
	if cached == nil {
		t.Fatal("expected cached session, got nil")
	}
	if cached.UserID != "user-1" || cached.Email != "ex@mail.com" {
		t.Errorf("unexpected cached session: %+v", cached)
	}
}

func TestSessionCache_MissReturnsNil(t *testing.T) {
	ctx, c, _ := newTestCache(t)

	if cached := c.GetSession(ctx, "never-set"); cached != nil {
		t.Errorf("expected nil on miss, got %+v", cached)
	}
}

func TestSessionCache_CorruptedEntryReturnsNil(t *testing.T) {
	ctx, c, mr := newTestCache(t)

	if err := mr.Set(sessionCachePrefix+"digest-bad", "{not json"); err != nil {
		t.Fatalf("seed corrupted entry: %v", err)
	}

	if cached := c.GetSession(ctx, "digest-bad"); cached != nil {
		t.Errorf("expected nil for corrupted entry, got %+v", cached)
	}
}

func TestSessionCache_DeleteSession(t *testing.T) {
	ctx, c, _ := newTestCache(t)

	sess := CachedSession{UserID: "user-1", Email: "ex@mail.com"}
	if err := c.SetSession(ctx, "digest-a", sess); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	if err := c.DeleteSession(ctx, "digest-a"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	if cached := c.GetSession(ctx, "digest-a"); cached != nil {
		t.Errorf("expected nil after delete, got %+v", cached)
	}
}

func TestSessionCache_EntryExpires(t *testing.T) {
	ctx, c, mr := newTestCache(t)

	sess := CachedSession{UserID: "user-1", Email: "ex@mail.com"}
	if err := c.SetSession(ctx, "digest-a", sess); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if cached := c.GetSession(ctx, "digest-a"); cached != nil {
		t.Errorf("expected nil after TTL, got %+v", cached)
	}
}
