package cache

import (
	"context"
	"errors"
	"testing"
	"time"
	"transparency/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionCache(client, ttl), mr
}

func TestSessionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	s := &model.Session{
		ID:        "abc",
		UserID:    "u1",
		Stage:     model.StageInitial,
		Questions: model.InitialQuestions(),
		Answers:   model.ProductData{Name: "Oat Bar", Extra: map[string]any{"organic": true}},
	}
	if err := c.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("session:abc") {
		t.Fatal("expected key session:abc")
	}
	if ttl := mr.TTL("session:abc"); ttl != time.Minute {
		t.Errorf("ttl = %v", ttl)
	}

	got, err := c.Get(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Stage != model.StageInitial || len(got.Questions) != 4 || got.Answers.Name != "Oat Bar" {
		t.Errorf("got %+v", got)
	}
	if organic, ok := got.Answers.Bool("organic"); !ok || !organic {
		t.Errorf("extra answer lost: %+v", got.Answers)
	}
}

func TestSessionCacheMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	got, err := c.Get(ctx, "missing")
	if err != nil || got != nil {
		t.Fatalf("Get(missing) = %v, %v", got, err)
	}

	if err := c.Set(ctx, &model.Session{ID: "s1"}); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)
	if got, _ := c.Get(ctx, "s1"); got != nil {
		t.Errorf("expected expired session, got %+v", got)
	}
}

func TestSessionCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	if err := c.Set(ctx, &model.Session{ID: "s1"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Get(ctx, "s1"); got != nil {
		t.Errorf("session survived delete: %+v", got)
	}
}

func TestSessionCacheUpdate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	got, err := c.Update(ctx, "missing", func(*model.Session) error {
		t.Error("fn called for a missing session")
		return nil
	})
	if err != nil || got != nil {
		t.Fatalf("Update(missing) = %v, %v", got, err)
	}

	if err := c.Set(ctx, &model.Session{ID: "s1", Stage: model.StageInitial}); err != nil {
		t.Fatal(err)
	}
	got, err = c.Update(ctx, "s1", func(s *model.Session) error {
		s.Answers.Name = "Oat Bar"
		return nil
	})
	if err != nil || got == nil || got.Answers.Name != "Oat Bar" {
		t.Fatalf("Update = %+v, %v", got, err)
	}

	stop := errors.New("stop")
	if _, err := c.Update(ctx, "s1", func(s *model.Session) error {
		s.Answers.Name = "discarded"
		return stop
	}); !errors.Is(err, stop) {
		t.Errorf("err = %v", err)
	}
	if stored, _ := c.Get(ctx, "s1"); stored.Answers.Name != "Oat Bar" {
		t.Errorf("aborted update was written: %+v", stored.Answers)
	}
}

func TestSessionCacheUpdateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	if err := c.Set(ctx, &model.Session{ID: "s1"}); err != nil {
		t.Fatal(err)
	}

	calls := 0
	got, err := c.Update(ctx, "s1", func(s *model.Session) error {
		calls++
		if calls == 1 {
			// another writer lands between WATCH and EXEC
			other := &model.Session{ID: "s1", Answers: model.ProductData{Brand: "GoodCo"}}
			if err := c.Set(ctx, other); err != nil {
				return err
			}
		}
		s.Answers.Name = "Oat Bar"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if calls != 2 {
		t.Errorf("fn calls = %d, want 2", calls)
	}
	if got.Answers.Brand != "GoodCo" || got.Answers.Name != "Oat Bar" {
		t.Errorf("concurrent write lost: %+v", got.Answers)
	}
}

func TestSessionCacheLock(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	release, err := c.Lock(ctx, "s1")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := c.Lock(ctx, "s1"); !errors.Is(err, ErrLocked) {
		t.Errorf("second Lock err = %v", err)
	}
	if _, err := c.Lock(ctx, "s2"); err != nil {
		t.Errorf("other session blocked: %v", err)
	}

	release()
	release2, err := c.Lock(ctx, "s1")
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}

	// a stale release must not drop the current holder's lock
	release()
	if _, err := c.Lock(ctx, "s1"); !errors.Is(err, ErrLocked) {
		t.Errorf("stale release freed the lock: %v", err)
	}
	release2()

	if _, err := c.Lock(ctx, "s3"); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(lockTTL + time.Second)
	if _, err := c.Lock(ctx, "s3"); err != nil {
		t.Errorf("lock did not expire: %v", err)
	}
}
