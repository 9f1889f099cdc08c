package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"propcalc/domain"
	"propcalc/resilience"
)

const snapshotKeyPrefix = "propcalc:snapshot:"

// RedisOptions configures RedisSnapshotRepository.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Timeout  time.Duration
	Retry    resilience.Config
}

// RedisSnapshotRepository stores snapshots as JSON strings with a TTL.
// Calls are retried and go through a circuit breaker.
type RedisSnapshotRepository struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	retry   resilience.Config
	cb      *gobreaker.CircuitBreaker
}

func NewRedisSnapshotRepository(opts RedisOptions) *RedisSnapshotRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
		MaxRetries:   -1, // retries happen in the resilience layer
	})
	return &RedisSnapshotRepository{
		client:  rdb,
		ttl:     opts.TTL,
		timeout: opts.Timeout,
		retry:   opts.Retry,
		cb:      resilience.NewCircuitBreaker("snapshot-redis"),
	}
}

func (r *RedisSnapshotRepository) Save(ctx context.Context, snapshot domain.InputSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snapshot.ID, err)
	}

	return r.do(ctx, "save", func(ctx context.Context) error {
		return r.client.Set(ctx, snapshotKeyPrefix+snapshot.ID, data, r.ttl).Err()
	})
}

func (r *RedisSnapshotRepository) Load(ctx context.Context, id string) (domain.InputSnapshot, bool, error) {
	var raw string
	err := r.do(ctx, "load", func(ctx context.Context) error {
		v, err := r.client.Get(ctx, snapshotKeyPrefix+id).Result()
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return domain.InputSnapshot{}, false, nil
	}
	if err != nil {
		return domain.InputSnapshot{}, false, err
	}

	var s domain.InputSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.InputSnapshot{}, false, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return s, true, nil
}

// Ping checks connectivity for readiness probes.
func (r *RedisSnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *RedisSnapshotRepository) Close() error {
	return r.client.Close()
}

// do runs fn with a per-attempt timeout, retries and the breaker. A missing
// key is a normal outcome and counts as success for the breaker.
func (r *RedisSnapshotRepository) do(ctx context.Context, op string, fn func(context.Context) error) error {
	var missing bool
	_, err := r.cb.Execute(func() (interface{}, error) {
		err := resilience.RetryWithBackoff(ctx, r.retry, isMissing, func() error {
			attemptCtx := ctx
			if r.timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
				defer cancel()
			}
			return fn(attemptCtx)
		})
		if isMissing(err) {
			missing = true
			return nil, nil
		}
		return nil, err
	})

	switch {
	case missing:
		return redis.Nil
	case err == nil:
		return nil
	case resilience.IsBreakerOpen(err):
		return &domain.ErrStoreUnavailable{Op: op, Err: fmt.Errorf("circuit open: %w", err)}
	default:
		return &domain.ErrStoreUnavailable{Op: op, Err: err}
	}
}

func isMissing(err error) bool {
	return errors.Is(err, redis.Nil)
}
