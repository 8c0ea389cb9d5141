package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_StartsClosed(t *testing.T) {
	cb := NewCircuitBreaker(nil)

	if cb.State() != BreakerClosed {
		t.Errorf("Expected initial state closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(&BreakerConfig{
		MaxFailures:      3,
		Timeout:          time.Minute,
		HalfOpenMaxCalls: 2,
	})

	failing := errors.New("redis down")
	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return failing })
	}

	if cb.State() != BreakerOpen {
		t.Errorf("Expected open state after %d failures, got %v", 3, cb.State())
	}

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCacheDown) {
		t.Errorf("Expected ErrCacheDown while open, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(&BreakerConfig{
		MaxFailures:      3,
		Timeout:          time.Minute,
		HalfOpenMaxCalls: 2,
	})

	failing := errors.New("redis down")
	cb.Execute(func() error { return failing })
	cb.Execute(func() error { return failing })
	cb.Execute(func() error { return nil })
	cb.Execute(func() error { return failing })
	cb.Execute(func() error { return failing })

	if cb.State() != BreakerClosed {
		t.Errorf("Expected closed state, got %v", cb.State())
	}
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(&BreakerConfig{
		MaxFailures:      1,
		Timeout:          10 * time.Millisecond,
		HalfOpenMaxCalls: 2,
	})

	cb.Execute(func() error { return errors.New("redis down") })
	if cb.State() != BreakerOpen {
		t.Fatalf("Expected open state, got %v", cb.State())
	}

	time.Sleep(20 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("Expected recovery call %d to pass, got %v", i, err)
		}
	}

	if cb.State() != BreakerClosed {
		t.Errorf("Expected closed state after recovery, got %v", cb.State())
	}
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb := NewCircuitBreaker(nil)
	stats := cb.Stats()

	if stats["state"] != "closed" {
		t.Errorf("Expected state closed, got %v", stats["state"])
	}
	if stats["max_failures"] != 5 {
		t.Errorf("Expected max_failures 5, got %v", stats["max_failures"])
	}
}
