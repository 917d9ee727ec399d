package applications

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateRequestID_Format(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 999_000_000, time.UTC)

	got := GenerateRequestID(now)
	if got != "REQ-20260102030405" {
		t.Fatalf("unexpected request ID: %s", got)
	}

	// precisión de segundo: los nanos no aparecen
	re := regexp.MustCompile(`^REQ-\d{14}$`)
	if !re.MatchString(got) {
		t.Fatalf("request ID %q does not match REQ-<YYYYMMDDHHMMSS>", got)
	}
}

func TestGenerateRequestID_SameSecondCollides(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	other := now.Add(500 * time.Millisecond)

	if GenerateRequestID(now) != GenerateRequestID(other) {
		t.Fatalf("same-second timestamps must produce the same ID (storage resolves the collision)")
	}
}
