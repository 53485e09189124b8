package service

import (
	"testing"
	"time"
)

func TestOTPRateLimiterWindow(t *testing.T) {
	l := NewOTPRateLimiter(time.Hour, 2)

	if !l.Allow("ana@example.com") || !l.Allow("ana@example.com") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("ana@example.com") {
		t.Error("third request within window should be denied")
	}

	// claves independientes
	if !l.Allow("otro@example.com") {
		t.Error("different key should not share the counter")
	}
}

func TestOTPRateLimiterExpiry(t *testing.T) {
	l := NewOTPRateLimiter(10*time.Millisecond, 1)

	if !l.Allow("ana@example.com") {
		t.Fatal("first request should pass")
	}
	if l.Allow("ana@example.com") {
		t.Fatal("second request should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !l.Allow("ana@example.com") {
		t.Error("request after window should pass")
	}
}
