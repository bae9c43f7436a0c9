package infra

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RealGoldAstro/roblox-playercount-proxy/playercount/domain"
)

// RedisSampleStore guarda as amostras num sorted set (score = timestamp) e o
// instante da última amostra num scalar, ambos sob um prefixo configurável.
//
// Cada operação tem timeout próprio: o store é remoto e nenhuma chamada pode
// pendurar a requisição indefinidamente.
type RedisSampleStore struct {
	rdb *redis.Client

	prefix    string
	opTimeout time.Duration
}

type RedisStoreOption func(*RedisSampleStore)

func WithPrefix(prefix string) RedisStoreOption {
	return func(s *RedisSampleStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithOpTimeout(d time.Duration) RedisStoreOption {
	return func(s *RedisSampleStore) { s.opTimeout = d }
}

func NewRedisSampleStore(rdb *redis.Client, opts ...RedisStoreOption) *RedisSampleStore {
	s := &RedisSampleStore{
		rdb:       rdb,
		prefix:    "playercount",
		opTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSampleStore) lastKey() string { return s.prefix + ":last_sample_time" }
func (s *RedisSampleStore) samplesKey() string { return s.prefix + ":samples" }

func (s *RedisSampleStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *RedisSampleStore) LastSampleTime(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.rdb.Get(ctx, s.lastKey()).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// valor corrompido equivale a "nunca amostrado"
		return 0, nil
	}
	return ts, nil
}

func (s *RedisSampleStore) SetLastSampleTime(ctx context.Context, ts int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.Set(ctx, s.lastKey(), strconv.FormatInt(ts, 10), 0).Err()
}

func (s *RedisSampleStore) Append(ctx context.Context, sample domain.Sample) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.ZAdd(ctx, s.samplesKey(), redis.Z{
		Score:  float64(sample.Timestamp),
		Member: domain.EncodeMember(sample),
	}).Err()
}

func (s *RedisSampleStore) Range(ctx context.Context, min, max int64) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.ZRangeByScore(ctx, s.samplesKey(), &redis.ZRangeBy{
		Min: strconv.FormatInt(min, 10),
		Max: strconv.FormatInt(max, 10),
	}).Result()
}

func (s *RedisSampleStore) RemoveOlderThan(ctx context.Context, cutoff int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// estritamente menor que o cutoff: "(" exclui o próprio limite
	return s.rdb.ZRemRangeByScore(ctx, s.samplesKey(), "-inf", "("+strconv.FormatInt(cutoff, 10)).Err()
}

func (s *RedisSampleStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.rdb.Ping(ctx).Err()
}
