package infra

import (
	"sync"
	"time"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
)

// MemoryStore guarda o estado de admissão por chave em memória, com limpeza
// periódica de entradas ociosas.
//
// O estado é local ao processo e efêmero: não sobrevive a restart nem é
// compartilhado entre instâncias. É uma aproximação aceita, não uma garantia.
type MemoryStore struct {
	mu           sync.Mutex
	entries      map[string]*storeEntry
	policy       domain.Policy
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type storeEntry struct {
	state    domain.Entry
	lastSeen time.Time
}

type StoreOption func(*MemoryStore)

func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *MemoryStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

func NewMemoryStore(policy domain.Policy, opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:      make(map[string]*storeEntry),
		policy:       policy,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Policy() domain.Policy       { return s.policy }
func (s *MemoryStore) CleanupEvery() time.Duration { return s.cleanupEvery }

// Admit implementa domain.AdmissionStore. O read-modify-write é exclusivo
// por causa do lock; a transição em si fica toda em domain.Advance.
func (s *MemoryStore) Admit(key domain.Key, now time.Time) (domain.Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[string(key)]
	if !ok {
		ent = &storeEntry{}
		s.entries[string(key)] = ent
	}

	next, adm := domain.Advance(ent.state, now, s.policy)
	ent.state = next
	ent.lastSeen = now
	return adm, nil
}

// Cleanup remove entradas ociosas. Entradas ainda bloqueadas são poupadas:
// remover o estado de bloqueio antes da hora levantaria a punição mais cedo.
func (s *MemoryStore) Cleanup() {
	now := time.Now()
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.state.BlockedUntil.After(now) {
			continue
		}
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas periodicamente.
// Pare cancelando o contexto.
func (s *MemoryStore) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
// (Permite reuso em libs sem acoplar.)
type DoneContext interface {
	Done() <-chan struct{}
}
