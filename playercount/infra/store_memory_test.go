package infra

import (
	"context"
	"testing"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

func TestMemorySampleStore_LastSampleTimeDefaultsToZero(t *testing.T) {
	s := NewMemorySampleStore()

	last, err := s.LastSampleTime(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != 0 {
		t.Fatalf("expected 0, got %d", last)
	}

	if err := s.SetLastSampleTime(context.Background(), 1234); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, _ = s.LastSampleTime(context.Background())
	if last != 1234 {
		t.Fatalf("expected 1234, got %d", last)
	}
}

func TestMemorySampleStore_RangeIsInclusive(t *testing.T) {
	s := NewMemorySampleStore()
	ctx := context.Background()

	for _, sm := range []domain.Sample{{Timestamp: 100, Value: 1}, {Timestamp: 200, Value: 2}, {Timestamp: 300, Value: 3}} {
		_ = s.Append(ctx, sm)
	}

	members, err := s.Range(ctx, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d (%v)", len(members), members)
	}
}

func TestMemorySampleStore_RemoveOlderThanIsStrict(t *testing.T) {
	s := NewMemorySampleStore()
	ctx := context.Background()

	_ = s.Append(ctx, domain.Sample{Timestamp: 99, Value: 1})
	_ = s.Append(ctx, domain.Sample{Timestamp: 100, Value: 2})

	if err := s.RemoveOlderThan(ctx, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// o próprio cutoff fica; só o estritamente menor sai
	members, _ := s.Range(ctx, 0, 1000)
	if len(members) != 1 || members[0] != "100:2" {
		t.Fatalf("expected only the cutoff sample, got %v", members)
	}
}
