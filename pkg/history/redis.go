package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis connection and the per-entity history cap.
type RedisConfig struct {
	ConnectionURL  string        `env:"TRANSITKIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"TRANSITKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"TRANSITKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"TRANSITKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"TRANSITKIT_REDIS_KEY_PREFIX" envDefault:"transitkit:history:"`
	HistoryLimit   int64         `env:"TRANSITKIT_REDIS_HISTORY_LIMIT" envDefault:"100"` // HistoryLimit caps the records kept per entity; 0 keeps everything.
}

// ConnectRedis opens a Redis client, retrying until the server answers PING
// or the attempts run out.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for i, n := 0, max(cfg.RetryAttempts, 1); i < n; i++ {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisStorage keeps a capped JSON list per entity, newest first.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
	limit  int64
}

// NewRedisStorage creates a storage on top of an existing client.
func NewRedisStorage(client redis.UniversalClient, cfg RedisConfig) (*RedisStorage, error) {
	if client == nil {
		return nil, ErrNilStorage
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "transitkit:history:"
	}
	return &RedisStorage{
		client: client,
		prefix: prefix,
		limit:  cfg.HistoryLimit,
	}, nil
}

func (s *RedisStorage) key(entityID string) string {
	return s.prefix + entityID
}

func (s *RedisStorage) Store(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrFailedToStoreRecord, err)
	}

	key := s.key(rec.EntityID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		if s.limit > 0 {
			pipe.LTrim(ctx, key, 0, s.limit-1)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrFailedToStoreRecord, err)
	}
	return nil
}

func (s *RedisStorage) List(ctx context.Context, entityID string, limit int) ([]Record, error) {
	if entityID == "" {
		return nil, ErrEmptyEntityID
	}

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, s.key(entityID), 0, stop).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToListRecords, err)
	}

	out := make([]Record, 0, len(values))
	for _, v := range values {
		var rec Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, errors.Join(ErrFailedToListRecords, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
