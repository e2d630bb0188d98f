package verify

import (
	"context"
	"testing"
	"time"
)

func TestMissingBinaryIsUnavailable(t *testing.T) {
	c := NewWithBinary("definitely-not-a-flac-decoder", time.Second)
	if c.Available() {
		t.Fatal("checker with a missing binary reports available")
	}
	if err := c.Verify(context.Background(), "whatever.flac"); err != nil {
		t.Errorf("unavailable checker must no-op, got %v", err)
	}
}

func TestDefaultTimeout(t *testing.T) {
	c := NewWithBinary("definitely-not-a-flac-decoder", 0)
	if c.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, DefaultTimeout)
	}
}

func TestNilCheckerIsUnavailable(t *testing.T) {
	var c *Checker
	if c.Available() {
		t.Error("nil checker reports available")
	}
}
