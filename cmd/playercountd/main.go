package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/RealGoldAstro/roblox-playercount-proxy/logging"
	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/cors"
	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit"
	rldomain "github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
	rlinfra "github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/infra"
	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/requestid"
	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount"
	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/application"
	pcdomain "github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
	pcinfra "github.com/RealGoldAstro/roblox-playercount-proxy/playercount/infra"
)

func main() {
	logging.Setup(logging.ConfigFromEnv())

	cfg, err := readConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Redis é opcional: sem REDIS_ADDR o serviço roda com store em memória e
	// os picos refletem apenas a vida do processo.
	var rdb *redis.Client
	if cfg.redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			// store degradado não derruba o serviço; cada operação tem fallback
			log.Warn().Err(err).Str("addr", cfg.redisAddr).Msg("redis ping failed; store operations will degrade")
		}
	}

	var sampleStore pcdomain.SampleStore
	var pinger pcdomain.Pinger
	if rdb != nil {
		rs := pcinfra.NewRedisSampleStore(rdb,
			pcinfra.WithPrefix(cfg.keyPrefix),
			pcinfra.WithOpTimeout(cfg.storeOpTimeout),
		)
		sampleStore, pinger = rs, rs
	} else {
		ms := pcinfra.NewMemorySampleStore()
		sampleStore, pinger = ms, ms
	}

	source := pcinfra.NewRobloxSource(cfg.robloxAPIURL, cfg.universeID,
		pcinfra.WithSourceTimeout(cfg.sourceTimeout),
		pcinfra.WithThrottle(cfg.sourceRPS, cfg.sourceBurst),
		pcinfra.WithConcurrencyGate(cfg.sourceConcurrency),
	)

	handler := &playercount.Handler{
		Source:  source,
		Tracker: &application.Tracker{Store: sampleStore},
	}
	health := &playercount.HealthHandler{Store: pinger}

	limiterStore := rlinfra.NewMemoryStore(cfg.ratePolicy)
	limiterStore.StartJanitor(ctx)

	var statsStore rldomain.StatsStore
	if cfg.rateStatsEnabled {
		if rdb != nil {
			statsStore = rlinfra.NewRedisStatsStore(rdb,
				rlinfra.WithStatsPrefix(cfg.rateStatsPrefix),
				rlinfra.WithStatsTTL(cfg.rateStatsTTL),
				rlinfra.WithStatsBucket(cfg.rateStatsBucket),
				rlinfra.WithStatsTrackKeys(cfg.rateStatsTrackKeys),
			)
		} else {
			statsStore = rlinfra.NewMemoryStatsStore()
		}
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(cors.Middleware)
	if cfg.rateEnabled {
		r.Use(ratelimit.Middleware(ratelimit.Options{
			Store:               limiterStore,
			Stats:               statsStore,
			RejectStatus:        http.StatusTooManyRequests,
			AddRateLimitHeaders: cfg.addRateHeaders,
		}))
	}
	// métodos não são distinguidos no endpoint de leitura (preflight já
	// encerra no middleware de CORS)
	r.Handle("/api/players", handler)
	r.Get("/healthz", health.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.listenAddr).Str("universe_id", cfg.universeID).Msg("playercountd listening")
	log.Info().Bool("enabled", cfg.rateEnabled).Dur("window", cfg.ratePolicy.Window).Int("max", cfg.ratePolicy.MaxRequests).Dur("block", cfg.ratePolicy.BlockDuration).Msg("rate limit")
	log.Info().Bool("redis", rdb != nil).Str("prefix", cfg.keyPrefix).Msg("sample store")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

type config struct {
	listenAddr string

	universeID        string
	robloxAPIURL      string
	sourceTimeout     time.Duration
	sourceRPS         float64
	sourceBurst       int
	sourceConcurrency int

	redisAddr      string
	redisPassword  string
	redisDB        int
	keyPrefix      string
	storeOpTimeout time.Duration

	rateEnabled    bool
	ratePolicy     rldomain.Policy
	addRateHeaders bool

	rateStatsEnabled   bool
	rateStatsPrefix    string
	rateStatsTTL       time.Duration
	rateStatsBucket    string
	rateStatsTrackKeys bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")

	cfg.universeID = strings.TrimSpace(os.Getenv("UNIVERSE_ID"))
	cfg.robloxAPIURL = strings.TrimRight(getenvDefault("ROBLOX_API_URL", "https://games.roblox.com"), "/")
	cfg.sourceTimeout = getenvDurationDefault("SOURCE_TIMEOUT", 5*time.Second)
	cfg.sourceRPS = getenvFloatDefault("SOURCE_RPS", 0)
	cfg.sourceBurst = getenvIntDefault("SOURCE_BURST", 1)
	cfg.sourceConcurrency = getenvIntDefault("SOURCE_CONCURRENCY", 0)

	cfg.redisAddr = getenvDefault("REDIS_ADDR", "")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)
	cfg.keyPrefix = getenvDefault("KEY_PREFIX", "playercount")
	cfg.storeOpTimeout = getenvDurationDefault("STORE_OP_TIMEOUT", 2*time.Second)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.ratePolicy = rldomain.Policy{
		Window:        getenvDurationDefault("RATE_WINDOW", 10*time.Second),
		MaxRequests:   getenvIntDefault("RATE_MAX", 10),
		BlockDuration: getenvDurationDefault("RATE_BLOCK", 1*time.Hour),
	}
	cfg.addRateHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.rateStatsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.rateStatsPrefix = getenvDefault("RATE_STATS_PREFIX", "playercount:stats")
	cfg.rateStatsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.rateStatsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.rateStatsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	if cfg.universeID == "" {
		return config{}, errors.New("UNIVERSE_ID is required")
	}
	if cfg.ratePolicy.Window <= 0 {
		return config{}, errors.New("RATE_WINDOW must be > 0")
	}
	if cfg.ratePolicy.MaxRequests <= 0 {
		return config{}, errors.New("RATE_MAX must be > 0")
	}
	if cfg.ratePolicy.BlockDuration <= 0 {
		return config{}, errors.New("RATE_BLOCK must be > 0")
	}
	if cfg.sourceConcurrency < 0 {
		return config{}, errors.New("SOURCE_CONCURRENCY must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
