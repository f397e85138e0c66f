package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCacheManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cm := &CacheManager{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		ctx:    context.Background(),
	}
	return cm, mr
}

func TestStoreAndVerifyOTP(t *testing.T) {
	cm, _ := testCacheManager(t)

	if err := cm.StoreOTP("email", "founder@acme.example", "482913", 5*time.Minute); err != nil {
		t.Fatalf("StoreOTP failed: %v", err)
	}

	ok, err := cm.VerifyOTP("email", "founder@acme.example", "111111")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if ok {
		t.Fatal("wrong code must not verify")
	}

	ok, err = cm.VerifyOTP("email", "founder@acme.example", "482913")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !ok {
		t.Fatal("correct code must verify")
	}

	// One shot: the same code can't be replayed.
	ok, _ = cm.VerifyOTP("email", "founder@acme.example", "482913")
	if ok {
		t.Fatal("consumed code must not verify again")
	}
}

func TestVerifyOTPChannelsAreIsolated(t *testing.T) {
	cm, _ := testCacheManager(t)

	if err := cm.StoreOTP("phone", "9876543210", "123456", 5*time.Minute); err != nil {
		t.Fatalf("StoreOTP failed: %v", err)
	}

	ok, _ := cm.VerifyOTP("email", "9876543210", "123456")
	if ok {
		t.Fatal("a phone code must not verify on the email channel")
	}

	ok, _ = cm.VerifyOTP("phone", "9876543210", "123456")
	if !ok {
		t.Fatal("phone code must verify on the phone channel")
	}
}

func TestVerifyOTPExpires(t *testing.T) {
	cm, mr := testCacheManager(t)

	if err := cm.StoreOTP("email", "late@acme.example", "654321", time.Minute); err != nil {
		t.Fatalf("StoreOTP failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	ok, err := cm.VerifyOTP("email", "late@acme.example", "654321")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if ok {
		t.Fatal("expired code must not verify")
	}
}

func TestVerifyOTPBypassCode(t *testing.T) {
	cm, _ := testCacheManager(t)

	// Default environment is development, where the configured bypass
	// code verifies without a stored entry.
	ok, err := cm.VerifyOTP("phone", "9876543210", "000000")
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if !ok {
		t.Fatal("bypass code must verify outside production")
	}
}

func TestCompletionCache(t *testing.T) {
	cm, mr := testCacheManager(t)

	if got := cm.GetCompletion("user-1"); got != "" {
		t.Fatalf("expected miss, got %q", got)
	}

	cm.SetCompletion("user-1", "42%")
	if got := cm.GetCompletion("user-1"); got != "42%" {
		t.Fatalf("expected 42%%, got %q", got)
	}

	cm.InvalidateCompletion("user-1")
	if got := cm.GetCompletion("user-1"); got != "" {
		t.Fatalf("expected miss after invalidation, got %q", got)
	}

	cm.SetCompletion("user-2", "75%")
	mr.FastForward(CompletionTTL + time.Second)
	if got := cm.GetCompletion("user-2"); got != "" {
		t.Fatalf("expected expiry after TTL, got %q", got)
	}
}
