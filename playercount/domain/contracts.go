package domain

import (
	"context"
	"errors"
)

// ErrSourceUnavailable cobre todas as formas de "a fonte não serviu um
// contador usável": HTTP não-2xx, corpo indecifrável, data vazio, entrada
// sem playing.
var ErrSourceUnavailable = errors.New("count source unavailable")

// CountSource lê o número de jogadores ao vivo na fonte externa.
type CountSource interface {
	Playing(ctx context.Context) (int64, error)
}

// SampleStore é o que o sampler precisa de um armazenamento durável.
//
// Cada operação pode falhar de forma independente; o chamador trata cada
// falha como "esse passo opcional não aconteceu" e segue com resultado
// degradado.
type SampleStore interface {
	// LastSampleTime devolve o instante (epoch ms) da última amostra
	// gravada, ou 0 se nunca houve.
	LastSampleTime(ctx context.Context) (int64, error)
	SetLastSampleTime(ctx context.Context, ts int64) error
	Append(ctx context.Context, s Sample) error
	// Range devolve os membros com timestamp em [min, max].
	Range(ctx context.Context, min, max int64) ([]string, error)
	// RemoveOlderThan poda membros com timestamp estritamente menor que cutoff.
	RemoveOlderThan(ctx context.Context, cutoff int64) error
}

// Pinger é o que o healthcheck precisa saber do armazenamento.
type Pinger interface {
	Ping(ctx context.Context) error
}
