package ratelimit_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/reelhub/internal/app/system/ratelimit"
)

func TestLimiter_AllowWithinBudget(t *testing.T) {
	l := ratelimit.New(2, time.Minute)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("k") {
		t.Error("third request should be blocked")
	}
	if !l.Allow("other") {
		t.Error("keys are counted independently")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("budget should be exhausted")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("reset should restore the budget")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"forwarded chain uses first hop", "10.0.0.1:1234", "1.2.3.4, 5.6.7.8", "", "1.2.3.4"},
		{"real ip header", "10.0.0.1:1234", "", "9.8.7.6", "9.8.7.6"},
		{"remote addr strips port", "10.0.0.1:1234", "", "", "10.0.0.1"},
		{"remote addr without port", "10.0.0.1", "", "", "10.0.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := ratelimit.ClientIP(req); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_PerAccount(t *testing.T) {
	ll := ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	req := httptest.NewRequest("POST", "/", nil)
	for i := 0; i < 2; i++ {
		if allowed, _ := ll.Check(req, "Someone@Example.com"); !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	// Case and whitespace variants hit the same account budget.
	allowed, msg := ll.Check(req, " someone@example.com ")
	if allowed {
		t.Fatal("third attempt for the account should be blocked")
	}
	if !strings.Contains(msg, "this account") {
		t.Errorf("block message should name the account axis, got %q", msg)
	}

	ll.ResetEmail("someone@example.com")
	if allowed, _ := ll.Check(req, "someone@example.com"); !allowed {
		t.Error("reset should restore the account budget")
	}
}

func TestLoginLimiter_PerIP(t *testing.T) {
	ll := ratelimit.NewLoginLimiterWithConfig(1, time.Minute, 100, time.Minute)

	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "203.0.113.7:4567"
	if allowed, _ := ll.Check(req, "a@example.com"); !allowed {
		t.Fatal("first attempt should be allowed")
	}

	// A different account from the same host is still throttled.
	allowed, msg := ll.Check(req, "b@example.com")
	if allowed {
		t.Fatal("second attempt from the same host should be blocked")
	}
	if strings.Contains(msg, "this account") {
		t.Errorf("block should be attributed to the host, got %q", msg)
	}

	other := httptest.NewRequest("POST", "/", nil)
	other.RemoteAddr = "203.0.113.8:4567"
	if allowed, _ := ll.Check(other, "a@example.com"); !allowed {
		t.Error("a different host has its own budget")
	}
}
