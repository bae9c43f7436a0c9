package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_GeneratesIDWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	w := httptest.NewRecorder()
	Middleware(next).ServeHTTP(w, r)

	if seen == "" {
		t.Fatalf("expected request id in context")
	}
	if got := w.Header().Get(Header); got != seen {
		t.Fatalf("expected response header %q to match context id %q", got, seen)
	}
}

func TestMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.Header.Set(Header, "abc-123")
	w := httptest.NewRecorder()
	Middleware(next).ServeHTTP(w, r)

	if seen != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", seen)
	}
}

func TestFromContext_EmptyWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	if got := FromContext(r.Context()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
