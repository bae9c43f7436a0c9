package infra

import (
	"context"
	"sort"
	"sync"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// MemorySampleStore é o fallback quando não há Redis configurado.
// Útil para desenvolvimento e testes; os picos passam a refletir apenas a
// vida do processo.
type MemorySampleStore struct {
	mu      sync.Mutex
	last    int64
	samples []domain.Sample
}

func NewMemorySampleStore() *MemorySampleStore {
	return &MemorySampleStore{}
}

func (s *MemorySampleStore) LastSampleTime(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, nil
}

func (s *MemorySampleStore) SetLastSampleTime(_ context.Context, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = ts
	return nil
}

func (s *MemorySampleStore) Append(_ context.Context, sample domain.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
	// mantém a semântica de sorted set: membros ordenados por score
	sort.Slice(s.samples, func(i, j int) bool {
		return s.samples[i].Timestamp < s.samples[j].Timestamp
	})
	return nil
}

func (s *MemorySampleStore) Range(_ context.Context, min, max int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, sm := range s.samples {
		if sm.Timestamp >= min && sm.Timestamp <= max {
			out = append(out, domain.EncodeMember(sm))
		}
	}
	return out, nil
}

func (s *MemorySampleStore) RemoveOlderThan(_ context.Context, cutoff int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.samples[:0]
	for _, sm := range s.samples {
		if sm.Timestamp >= cutoff {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
	return nil
}

func (s *MemorySampleStore) Ping(context.Context) error { return nil }
