package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"motorbikes/pkg/browse"
	"motorbikes/pkg/catalog"
	"motorbikes/pkg/session"
)

func TestCodec(t *testing.T) {
	s := session.New()
	s.State.Selection = browse.Selection{Make: "KTM", Sort: browse.SortYearDesc}
	s.State.Cart = []catalog.Listing{{ID: "a", Make: "KTM", Price: 5799}, {ID: "a", Make: "KTM", Price: 5799}}
	s.State.Flipped = map[string]bool{"a": true}

	b, err := encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != s.ID || got.State.Selection != s.State.Selection {
		t.Fatalf("unexpected session: %+v", got)
	}
	if len(got.State.Cart) != 2 || !got.State.Flipped["a"] {
		t.Fatalf("cart or flips lost: %+v", got.State)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := decode([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestKey(t *testing.T) {
	if got := key("abc"); got != "session:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func newTestRepository(t *testing.T, ttl time.Duration) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, ttl), mr
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t, time.Hour)
	s := session.New()
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("expected %s, got %s", s.ID, got.ID)
	}
	s.State.Selection.Make = "Honda"
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.Get(ctx, s.ID)
	if got.State.Selection.Make != "Honda" {
		t.Fatalf("expected Honda, got %q", got.State.Selection.Make)
	}
	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Update(ctx, s); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestUpdateDoesNotCreate(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t, time.Hour)
	s := session.New()
	if err := repo.Update(ctx, s); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mr.Exists(key(s.ID)) {
		t.Fatal("update created a missing session")
	}
}

func TestTTLRefreshedOnWrite(t *testing.T) {
	ctx := context.Background()
	ttl := time.Minute
	repo, mr := newTestRepository(t, ttl)
	s := session.New()
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := mr.TTL(key(s.ID)); got != ttl {
		t.Fatalf("expected ttl %s after create, got %s", ttl, got)
	}

	mr.FastForward(40 * time.Second)
	if got := mr.TTL(key(s.ID)); got != 20*time.Second {
		t.Fatalf("expected 20s left, got %s", got)
	}
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := mr.TTL(key(s.ID)); got != ttl {
		t.Fatalf("expected ttl reset to %s, got %s", ttl, got)
	}

	mr.FastForward(ttl + time.Second)
	if _, err := repo.Get(ctx, s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}
