package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// RobloxSource lê o número de jogadores do universo configurado na Games API
// (GET {base}/v1/games?universeIds={id}).
//
// A pressão contra a API externa é limitada em duas frentes, ambas opcionais:
// um token bucket global (x/time/rate) e um gate de concorrência (SlotPool).
// Saturação ou timeout viram ErrSourceUnavailable para aquela requisição.
type RobloxSource struct {
	client     *http.Client
	baseURL    string
	universeID string

	limiter *rate.Limiter
	gate    SlotPool
	timeout time.Duration
}

type SourceOption func(*RobloxSource)

func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *RobloxSource) { s.client = c }
}

func WithSourceTimeout(d time.Duration) SourceOption {
	return func(s *RobloxSource) { s.timeout = d }
}

// WithThrottle limita a taxa global de buscas. rps <= 0 desliga o throttle.
func WithThrottle(rps float64, burst int) SourceOption {
	return func(s *RobloxSource) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithConcurrencyGate limita buscas simultâneas. max <= 0 desliga o gate.
func WithConcurrencyGate(max int) SourceOption {
	return func(s *RobloxSource) {
		if max > 0 {
			s.gate = NewChanPool(max)
		}
	}
}

func NewRobloxSource(baseURL, universeID string, opts ...SourceOption) *RobloxSource {
	s := &RobloxSource{
		client:     &http.Client{},
		baseURL:    baseURL,
		universeID: universeID,
		timeout:    5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type gamesResponse struct {
	Data []struct {
		Playing *int64 `json:"playing"`
	} `json:"data"`
}

func (s *RobloxSource) Playing(ctx context.Context) (int64, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("%w: throttled: %v", domain.ErrSourceUnavailable, err)
		}
	}

	if s.gate != nil {
		release, ok := s.gate.Acquire(ctx)
		if !ok {
			return 0, fmt.Errorf("%w: concurrency gate saturated", domain.ErrSourceUnavailable)
		}
		defer release()
	}

	u := fmt.Sprintf("%s/v1/games?universeIds=%s", s.baseURL, url.QueryEscape(s.universeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var body gamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	// data vazio ou primeira entrada sem playing = mesma condição de erro
	if len(body.Data) == 0 || body.Data[0].Playing == nil {
		return 0, fmt.Errorf("%w: empty payload", domain.ErrSourceUnavailable)
	}

	return *body.Data[0].Playing, nil
}
