//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/credvault/credvault/internal/credential"
	"github.com/credvault/credvault/internal/testutil"
)

func newViewCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationViewCache_SetGet(t *testing.T) {
	ctx, c := newViewCacheTestEnv(t)
	vc := NewViewCache(c, time.Minute, time.Minute)

	email := testutil.UniqueEmail("view")
	if err := vc.Set(ctx, &credential.View{Email: email, Secret: credential.Redacted}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	view, missing, err := vc.Get(ctx, email)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing {
		t.Error("expected missing=false")
	}
	if view == nil || view.Email != email || view.Secret != credential.Redacted {
		t.Errorf("unexpected view: %+v", view)
	}

	ttl := c.Client().TTL(ctx, credentialKey(email)).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}

func TestIntegrationViewCache_Miss(t *testing.T) {
	ctx, c := newViewCacheTestEnv(t)
	vc := NewViewCache(c, 0, 0)

	view, missing, err := vc.Get(ctx, "absent@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if view != nil || missing {
		t.Errorf("expected plain miss, got view=%+v missing=%v", view, missing)
	}
}

func TestIntegrationViewCache_NegativeAndForget(t *testing.T) {
	ctx, c := newViewCacheTestEnv(t)
	vc := NewViewCache(c, time.Minute, 5*time.Second)

	email := testutil.UniqueEmail("neg")
	if err := vc.SetMissing(ctx, email); err != nil {
		t.Fatalf("SetMissing failed: %v", err)
	}

	_, missing, err := vc.Get(ctx, email)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !missing {
		t.Fatal("expected negative marker")
	}

	if err := vc.Forget(ctx, email); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}

	view, missing, err := vc.Get(ctx, email)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if view != nil || missing {
		t.Errorf("expected miss after Forget, got view=%+v missing=%v", view, missing)
	}
}

func TestIntegrationViewCache_SetClearsNegative(t *testing.T) {
	ctx, c := newViewCacheTestEnv(t)
	vc := NewViewCache(c, time.Minute, time.Minute)

	email := testutil.UniqueEmail("clear")
	if err := vc.SetMissing(ctx, email); err != nil {
		t.Fatalf("SetMissing failed: %v", err)
	}
	if err := vc.Set(ctx, &credential.View{Email: email, Secret: credential.Redacted}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if n := c.Client().Exists(ctx, credentialKey(email)+negCacheKeySuffix).Val(); n != 0 {
		t.Errorf("negative key still present")
	}
}

func TestIntegrationViewCache_LateNegativeDoesNotHideView(t *testing.T) {
	ctx, c := newViewCacheTestEnv(t)
	vc := NewViewCache(c, time.Minute, time.Minute)

	email := testutil.UniqueEmail("late")
	if err := vc.Set(ctx, &credential.View{Email: email, Secret: credential.Redacted}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := vc.SetMissing(ctx, email); err != nil {
		t.Fatalf("SetMissing failed: %v", err)
	}

	view, missing, err := vc.Get(ctx, email)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing || view == nil || view.Email != email {
		t.Errorf("expected cached view to win, got view=%+v missing=%v", view, missing)
	}
}
