package server

import (
	"sync"
	"time"
)

// ipRateLimiter tracks last connection time per IP to slow reconnect spam.
// A zero cooldown admits everyone.
type ipRateLimiter struct {
	mu        sync.Mutex
	cooldown  time.Duration
	times     map[string]time.Time
	lastPrune time.Time
	now       func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		cooldown: cooldown,
		times:    make(map[string]time.Time),
		now:      time.Now,
	}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	if rl.cooldown <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

// prune drops stale entries at most once a minute. Caller holds rl.mu.
func (rl *ipRateLimiter) prune(now time.Time) {
	if now.Sub(rl.lastPrune) < time.Minute {
		return
	}
	rl.lastPrune = now
	cutoff := now.Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}
