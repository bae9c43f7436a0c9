package playercount

import (
	"net/http"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// HealthHandler responde sempre 200: o processo estar de pé é o que importa.
// O ping do store é best-effort e só muda o campo informativo.
type HealthHandler struct {
	Store domain.Pinger
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	if h.Store == nil {
		storeStatus = "none"
	} else if err := h.Store.Ping(r.Context()); err != nil {
		storeStatus = "degraded"
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: storeStatus})
}
