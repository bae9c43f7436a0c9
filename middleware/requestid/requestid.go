// Package requestid injeta um identificador único por requisição, propagado
// via contexto e devolvido no header X-Request-ID para correlação de logs.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// tipo próprio para evitar colisão de chave de contexto
type ctxKey string

const contextKey ctxKey = "request_id"

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)

		ctx := context.WithValue(r.Context(), contextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext devolve o id da requisição, ou "" se não houver.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey).(string); ok {
		return id
	}
	return ""
}
