package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndClear(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Hour)
	key := "127.0.0.1"
	now := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

	limiter.recordFailure(key, now.Add(-2*time.Hour))
	limiter.recordFailure(key, now.Add(-90*time.Minute))
	if limiter.blocked(key, now) {
		t.Fatal("expected attempts outside the window to be pruned")
	}

	limiter.recordFailure(key, now.Add(-30*time.Minute))
	if limiter.blocked(key, now) {
		t.Fatal("expected one recent failure to stay under limit 2")
	}
	limiter.recordFailure(key, now.Add(-10*time.Minute))
	if !limiter.blocked(key, now) {
		t.Fatal("expected two recent failures to hit limit 2")
	}

	limiter.clear(key)
	if limiter.blocked(key, now) {
		t.Fatal("expected no failures after clear")
	}
}

func TestAttemptLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(1, time.Hour)
	now := time.Now()
	limiter.recordFailure("10.0.0.1", now)

	if !limiter.blocked("10.0.0.1", now) {
		t.Fatal("expected first key to be blocked")
	}
	if limiter.blocked("10.0.0.2", now) {
		t.Fatal("expected second key to be unaffected")
	}
}
