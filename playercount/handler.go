package playercount

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/requestid"
	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/application"
	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// Handler atende o endpoint de leitura: busca o contador ao vivo na fonte,
// atualiza/consulta o tracker e monta a resposta.
//
// Só a indisponibilidade da fonte vira erro para o cliente (502). Falha de
// store é degradação invisível: o tracker responde com o valor ao vivo.
type Handler struct {
	Source  domain.CountSource
	Tracker *application.Tracker
	// Now permite injetar relógio em teste. Default: time.Now.
	Now func() time.Time
}

type successResponse struct {
	Playing   int64  `json:"playing"`
	Peak24h   int64  `json:"peak24h"`
	Peak7d    int64  `json:"peak7d"`
	UpdatedAt string `json:"updatedAt"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Playing int64  `json:"playing"`
	Peak24h int64  `json:"peak24h"`
	Peak7d  int64  `json:"peak7d"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playing, err := h.Source.Playing(ctx)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestid.FromContext(ctx)).Msg("count source unavailable")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "count source unavailable"})
		return
	}

	peaks := h.Tracker.RecordAndQuery(ctx, playing)

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	log.Debug().
		Str("request_id", requestid.FromContext(ctx)).
		Int64("playing", playing).
		Int64("peak24h", peaks.Day).
		Int64("peak7d", peaks.Week).
		Msg("player count served")

	writeJSON(w, http.StatusOK, successResponse{
		Playing:   playing,
		Peak24h:   peaks.Day,
		Peak7d:    peaks.Week,
		UpdatedAt: now.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("response encode failed")
	}
}
