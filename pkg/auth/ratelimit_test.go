package auth

import (
	"testing"
)

func TestIPRateLimiter_ClampsNonPositiveRate(t *testing.T) {
	for _, perMinute := range []int{0, -5} {
		l := NewIPRateLimiter(perMinute)
		if !l.Allow("10.0.0.1") {
			t.Errorf("NewIPRateLimiter(%d) should still admit the first attempt", perMinute)
		}
	}
}

func TestIPRateLimiter_LimitsPerIP(t *testing.T) {
	l := NewIPRateLimiter(2)

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("first two attempts should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("third attempt within the window should be rejected")
	}

	// A different client is unaffected
	if !l.Allow("10.0.0.2") {
		t.Error("other IPs should keep their own budget")
	}
}
