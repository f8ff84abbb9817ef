package server

import (
	"testing"
	"time"
)

func TestRateLimiterZeroCooldownAllowsAll(t *testing.T) {
	rl := newIPRateLimiter(0)
	for i := 0; i < 5; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("attempt %d blocked with zero cooldown", i)
		}
	}
}

func TestRateLimiterCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newIPRateLimiter(2 * time.Second)
	rl.now = func() time.Time { return now }

	if !rl.allow("10.0.0.1") {
		t.Fatalf("first attempt blocked")
	}
	if rl.allow("10.0.0.1") {
		t.Fatalf("second attempt inside cooldown allowed")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatalf("other ip blocked")
	}

	now = now.Add(2 * time.Second)
	if !rl.allow("10.0.0.1") {
		t.Fatalf("attempt after cooldown blocked")
	}
}

func TestRateLimiterPrunesStaleEntries(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newIPRateLimiter(time.Second)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.allow("10.0.0.2")

	if _, ok := rl.times["10.0.0.1"]; ok {
		t.Fatalf("stale entry kept")
	}
	if len(rl.times) != 1 {
		t.Fatalf("times = %v", rl.times)
	}
}
