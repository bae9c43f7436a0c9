package application

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// Tracker grava amostras do contador e calcula os picos das janelas de 24h
// e 7 dias.
//
// A cadência de amostragem (SampleInterval) é desacoplada da cadência de
// requisições: só a requisição engatilha a coleta, então um período sem
// tráfego é um período sem amostras. Isso é um buraco de cobertura aceito.
type Tracker struct {
	Store domain.SampleStore
	// Now permite injetar relógio em teste. Default: time.Now.
	Now func() time.Time
}

// RecordAndQuery nunca retorna erro: cada passo de store que falhar é
// degradação silenciosa e o valor ao vivo cobre o buraco. O pior caso
// (store totalmente fora) devolve {current, current}.
func (t *Tracker) RecordAndQuery(ctx context.Context, current int64) domain.Peaks {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	nowMs := now.UnixMilli()

	if t.Store == nil {
		return domain.Peaks{Day: current, Week: current}
	}

	// 1) decide se amostra: falha de leitura conta como "nunca amostrado"
	last, err := t.Store.LastSampleTime(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("last sample time unreadable; treating as never sampled")
		last = 0
	}

	// 2) grava no máximo uma amostra por intervalo; escrita é best-effort
	if last == 0 || nowMs-last >= domain.SampleInterval.Milliseconds() {
		if err := t.Store.Append(ctx, domain.Sample{Timestamp: nowMs, Value: current}); err != nil {
			log.Warn().Err(err).Msg("sample append failed; peak accuracy degraded")
		} else if err := t.Store.SetLastSampleTime(ctx, nowMs); err != nil {
			log.Warn().Err(err).Msg("last sample time update failed")
		}
	}

	// 3) poda oportunista abaixo do horizonte de retenção
	if err := t.Store.RemoveOlderThan(ctx, nowMs-domain.Retention.Milliseconds()); err != nil {
		log.Warn().Err(err).Msg("sample prune failed")
	}

	// 4+5) consulta as duas janelas; janela com falha vira só o valor ao vivo
	return domain.Peaks{
		Day:  t.windowPeak(ctx, nowMs, domain.DayWindow, current),
		Week: t.windowPeak(ctx, nowMs, domain.WeekWindow, current),
	}
}

func (t *Tracker) windowPeak(ctx context.Context, nowMs int64, window time.Duration, current int64) int64 {
	members, err := t.Store.Range(ctx, nowMs-window.Milliseconds(), nowMs)
	if err != nil {
		log.Warn().Err(err).Dur("window", window).Msg("window query failed; falling back to live value")
		return current
	}
	return domain.PeakOf(domain.DecodeMembers(members), current)
}
