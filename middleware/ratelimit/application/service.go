package application

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
)

// Service concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
//
// Falhas internas (store nil, erro, panic) viram Allowed=true: um limiter
// quebrado não pode derrubar a função principal do serviço.
type Service struct {
	Store domain.AdmissionStore
	Now   func() time.Time
}

func (s Service) Decide(key domain.Key) (adm domain.Admission) {
	if s.Store == nil {
		return domain.Admission{Allowed: true}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("key", string(key)).Msg("rate limit store panicked; failing open")
			adm = domain.Admission{Allowed: true}
		}
	}()

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	adm, err := s.Store.Admit(key, now)
	if err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("rate limit store error; failing open")
		return domain.Admission{Allowed: true}
	}
	return adm
}
