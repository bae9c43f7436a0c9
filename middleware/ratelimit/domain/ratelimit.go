package domain

// Camada de domínio do rate limit.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import (
	"math"
	"time"
)

type Key string

// Policy define a janela deslizante e a escalada de bloqueio.
//
// Dentro de uma janela de `Window`, até `MaxRequests` requisições passam.
// A requisição que estoura o limite escala para um bloqueio de `BlockDuration`.
type Policy struct {
	Window        time.Duration
	MaxRequests   int
	BlockDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Window:        10 * time.Second,
		MaxRequests:   10,
		BlockDuration: 1 * time.Hour,
	}
}

// Entry é o estado de um cliente. O zero value significa "nunca visto".
//
// BlockedUntil zero = sem bloqueio ativo. Count/WindowStart só têm
// significado enquanto não há bloqueio.
type Entry struct {
	Count        int
	WindowStart  time.Time
	BlockedUntil time.Time
}

// Admission é a decisão para uma requisição.
type Admission struct {
	Allowed bool
	// RetryAfter é o valor a ser retornado em Retry-After quando negar.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
	// Escalated indica que ESTA requisição causou a transição para bloqueio.
	Escalated bool
}

// Advance aplica a máquina de estados sobre um Entry e devolve o próximo
// estado junto com a decisão. Função pura: quem guarda/tranca o estado é a
// camada de infra.
//
// Transições:
//   - nunca visto            -> janela nova com count=1, permite
//   - bloqueado, ainda vale  -> nega com o tempo restante (arredondado p/ cima)
//   - bloqueado, expirou     -> volta a "nunca visto" e reavalia como primeira
//   - janela expirou         -> janela nova com count=1, permite
//   - dentro da janela, cabe -> incrementa, permite
//   - dentro da janela, não  -> escala para bloqueio, nega
func Advance(e Entry, now time.Time, p Policy) (Entry, Admission) {
	if !e.BlockedUntil.IsZero() {
		if now.Before(e.BlockedUntil) {
			return e, Admission{Allowed: false, RetryAfter: ceilSeconds(e.BlockedUntil.Sub(now))}
		}
		// bloqueio expirou: reavalia como cliente novo
		e = Entry{}
	}

	if e.Count == 0 || now.Sub(e.WindowStart) > p.Window {
		return Entry{Count: 1, WindowStart: now}, Admission{Allowed: true}
	}

	if e.Count+1 <= p.MaxRequests {
		e.Count++
		return e, Admission{Allowed: true}
	}

	e.BlockedUntil = now.Add(p.BlockDuration)
	return e, Admission{Allowed: false, RetryAfter: p.BlockDuration, Escalated: true}
}

// ceilSeconds arredonda para cima em segundos inteiros, com mínimo de 1s
// enquanto o bloqueio ainda vale (Retry-After: 0 não faz sentido para o cliente).
func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}

// AdmissionStore guarda o estado por chave e aplica Advance de forma atômica
// por chave (read-modify-write exclusivo).
//
// A implementação pode manter o estado em memória, Redis, etc. Erros devem
// ser tratados pelo chamador como fail-open (disponibilidade > enforcement).
type AdmissionStore interface {
	Admit(key Key, now time.Time) (Admission, error)
}
