package infra

import (
	"testing"
	"time"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
)

func TestMemoryStore_AdmitsUpToMaxThenDenies(t *testing.T) {
	p := domain.Policy{Window: 10 * time.Second, MaxRequests: 10, BlockDuration: time.Hour}
	s := NewMemoryStore(p)
	now := time.Unix(1000, 0)

	for i := 0; i < p.MaxRequests; i++ {
		adm, err := s.Admit("k", now.Add(time.Duration(i)*500*time.Millisecond))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !adm.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	adm, err := s.Admit("k", now.Add(6*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adm.Allowed {
		t.Fatalf("11th request inside the window should be denied")
	}
	if adm.RetryAfter <= 0 {
		t.Fatalf("expected positive RetryAfter, got %s", adm.RetryAfter)
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	p := domain.Policy{Window: 10 * time.Second, MaxRequests: 1, BlockDuration: time.Hour}
	s := NewMemoryStore(p)
	now := time.Unix(1000, 0)

	if adm, _ := s.Admit("a", now); !adm.Allowed {
		t.Fatalf("expected key a allowed")
	}
	// outra chave tem a própria janela
	if adm, _ := s.Admit("b", now); !adm.Allowed {
		t.Fatalf("expected key b allowed")
	}
	if adm, _ := s.Admit("a", now.Add(time.Second)); adm.Allowed {
		t.Fatalf("expected key a denied on second request")
	}
}

func TestMemoryStore_BlockExpiresBackToFreshWindow(t *testing.T) {
	p := domain.Policy{Window: 10 * time.Second, MaxRequests: 1, BlockDuration: time.Hour}
	s := NewMemoryStore(p)
	now := time.Unix(1000, 0)

	_, _ = s.Admit("k", now)
	adm, _ := s.Admit("k", now.Add(time.Second))
	if adm.Allowed {
		t.Fatalf("expected block escalation")
	}

	adm, _ = s.Admit("k", now.Add(time.Second).Add(p.BlockDuration).Add(time.Second))
	if !adm.Allowed {
		t.Fatalf("expected fresh admit after block expiry")
	}
}

func TestMemoryStore_CleanupRemovesIdleEntries(t *testing.T) {
	p := domain.DefaultPolicy()
	s := NewMemoryStore(p, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	_, _ = s.Admit("k", time.Now())
	time.Sleep(4 * time.Millisecond)

	s.Cleanup()

	s.mu.Lock()
	_, ok := s.entries["k"]
	s.mu.Unlock()
	if ok {
		t.Fatalf("expected idle entry to be removed")
	}
}

func TestMemoryStore_CleanupSparesBlockedEntries(t *testing.T) {
	p := domain.Policy{Window: 10 * time.Second, MaxRequests: 1, BlockDuration: time.Hour}
	s := NewMemoryStore(p, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	now := time.Now()
	_, _ = s.Admit("k", now)
	adm, _ := s.Admit("k", now)
	if adm.Allowed {
		t.Fatalf("expected block escalation")
	}

	time.Sleep(4 * time.Millisecond)
	s.Cleanup()

	// remover a entrada apagaria o bloqueio antes da hora
	s.mu.Lock()
	_, ok := s.entries["k"]
	s.mu.Unlock()
	if !ok {
		t.Fatalf("expected blocked entry to survive cleanup")
	}
}
