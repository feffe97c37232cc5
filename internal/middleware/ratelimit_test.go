package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(rate, burst int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Rate:   rate,
		Window: time.Minute,
		Burst:  burst,
	})
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(5, 0)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		allowed, _, _ := rl.Allow("client-a")
		if !allowed {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(2, 0)
	defer rl.Stop()

	rl.Allow("client-b")
	rl.Allow("client-b")

	allowed, remaining, _ := rl.Allow("client-b")
	if allowed {
		t.Error("expected request to be blocked")
	}
	if remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", remaining)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(1, 0)
	defer rl.Stop()

	rl.Allow("client-c")
	if allowed, _, _ := rl.Allow("client-c"); allowed {
		t.Error("client-c should be exhausted")
	}
	if allowed, _, _ := rl.Allow("client-d"); !allowed {
		t.Error("client-d should have its own bucket")
	}
}

func TestRateLimit_Middleware_SetsHeadersAndBlocks(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(1, 0)
	defer rl.Stop()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RateLimit(rl)(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "1" {
		t.Errorf("expected limit header 1, got %s", rr.Header().Get("X-RateLimit-Limit"))
	}

	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}
