package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

type staticLimiter struct {
	allow bool
}

func (s *staticLimiter) Allow() bool {
	return s.allow
}

func TestRateLimitedDepositNeverReachesAttendant(t *testing.T) {
	service := newTestService(t, 2, 5)
	router := NewRouter(NewHandler(service), zaptest.NewLogger(t), WithLogging(false), WithRateLimit(0.01, 1))

	rec := doJSON(t, router, http.MethodPost, "/api/deposits", map[string]int{"coats": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected first deposit to be accepted, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/deposits", map[string]int{"backpacks": 2})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if body.Error != "Too many requests" {
		t.Fatalf("unexpected error body %+v", body)
	}

	occupancy := service.Layout().Occupancy
	if occupancy.Closed != 1 || occupancy.Free != 1 || occupancy.ContentsBeingChanged != 0 {
		t.Fatalf("rejected deposit changed occupancy: %+v", occupancy)
	}
	if state := service.LockerState(2); state.Status != cloakroom.Free {
		t.Fatalf("expected locker 2 to stay free, got %s", state.Status)
	}
}

func TestRateLimitedCollectionKeepsLockerClosed(t *testing.T) {
	service := newTestService(t, 1, 5)
	receipt, err := service.Deposit(context.Background(), cloakroom.Items{Umbrellas: 3})
	if err != nil {
		t.Fatalf("Deposit returned error: %v", err)
	}

	router := NewRouter(NewHandler(service), zaptest.NewLogger(t), WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}))
	rec := doJSON(t, router, http.MethodPost, "/api/collections", map[string]string{"key": receipt.Token})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	if state := service.LockerState(1); state.Status != cloakroom.Closed || state.Items.Umbrellas != 3 {
		t.Fatalf("expected locker 1 to stay closed with its umbrellas, got %+v", state)
	}
	if _, err := service.Collect(context.Background(), receipt.Token); err != nil {
		t.Fatalf("key should still be valid after a rejected request: %v", err)
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	service := newTestService(t, 1, 5)
	router := NewRouter(NewHandler(service), zaptest.NewLogger(t), WithLogging(false), WithRateLimiter(&staticLimiter{allow: true}))

	rec := doJSON(t, router, http.MethodPost, "/api/deposits", map[string]int{"otherItems": 5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected deposit to be accepted, got %d: %s", rec.Code, rec.Body.String())
	}
	if occupancy := service.Layout().Occupancy; occupancy.Closed != 1 {
		t.Fatalf("expected one closed locker, got %+v", occupancy)
	}
}

func TestRateLimitMiddlewareWithoutLimiter(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	rateLimitMiddleware(nil, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lockers", nil))
	if !called {
		t.Fatalf("expected handler to run when no limiter is configured")
	}
}

func TestNewTokenBucketLimiterFallsBackToOneRequest(t *testing.T) {
	limiter := newTokenBucketLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow() {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow() {
		t.Fatalf("expected burst of one to deny an immediate second request")
	}
}
