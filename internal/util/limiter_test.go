package util

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestHostLimiter_DefaultBurst(t *testing.T) {
	l := NewHostLimiter(10, -1)
	if l.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l.defaultBurst)
	}
}

func TestHostLimiter_Wait(t *testing.T) {
	l := NewHostLimiter(100, 1)
	ctx := context.Background()

	if err := l.Wait(ctx, "http://example.com/noise.csv"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := l.Wait(ctx, "http://example.org/noise.csv"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if len(l.limiters) != 2 {
		t.Errorf("expected one limiter per host, got %d", len(l.limiters))
	}
}

func TestHostLimiter_DisabledIsInfinite(t *testing.T) {
	l := NewHostLimiter(0, 1)
	if l.defaultRate != rate.Inf {
		t.Errorf("expected rate.Inf, got %v", l.defaultRate)
	}
}

func TestHostLimiter_CrawlDelayTightensRate(t *testing.T) {
	l := NewHostLimiter(10, 1)
	url := "http://example.com/noise.csv"

	if err := l.ApplyCrawlDelay(url, 2*time.Second); err != nil {
		t.Fatalf("apply crawl delay: %v", err)
	}
	if got := l.limiter("example.com").Limit(); got != rate.Every(2*time.Second) {
		t.Errorf("expected limit of one per 2s, got %v", got)
	}

	// A looser delay never relaxes the rate
	if err := l.ApplyCrawlDelay(url, 10*time.Millisecond); err != nil {
		t.Fatalf("apply crawl delay: %v", err)
	}
	if got := l.limiter("example.com").Limit(); got != rate.Every(2*time.Second) {
		t.Errorf("expected limit unchanged, got %v", got)
	}
}

func TestHostLimiter_WaitHonoursContext(t *testing.T) {
	l := NewHostLimiter(0.001, 1)
	url := "http://example.com/noise.csv"
	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, url); err == nil {
		t.Error("expected context error while waiting for a token")
	}
}
