package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinCapacity(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("store-1") {
			t.Fatalf("request %d should be within capacity", i+1)
		}
	}
	if rl.Allow("store-1") {
		t.Fatal("expected the bucket to be exhausted")
	}
	// Other keys have their own bucket.
	if !rl.Allow("store-2") {
		t.Fatal("expected a fresh key to be allowed")
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("store-1") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("store-1") {
		t.Fatal("second immediate request should be limited")
	}
	time.Sleep(25 * time.Millisecond)
	if !rl.Allow("store-1") {
		t.Fatal("expected the bucket to refill")
	}
}

func TestRateLimiter_HandlerKeysByStoreID(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(storeID string) int {
		req := httptest.NewRequest(http.MethodPost, "/onboarding/sync", nil)
		if storeID != "" {
			req = req.WithContext(context.WithValue(req.Context(), StoreIDKey, storeID))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := call("store-1"); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := call("store-1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the exhausted store, got %d", code)
	}
	if code := call("store-2"); code != http.StatusNoContent {
		t.Fatalf("expected another store to be unaffected, got %d", code)
	}
}

func TestRateLimiter_StopEndsCleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)
	rl.Stop()

	select {
	case <-rl.stopCleanup:
	default:
		t.Fatal("expected Stop to signal the cleanup goroutine")
	}
	// A stopped limiter still serves Allow; only the background cleanup ends.
	if !rl.Allow("store-1") {
		t.Fatal("expected Allow to keep working after Stop")
	}
}
