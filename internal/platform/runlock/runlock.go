package runlock

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// Locker serializes analytics runs per branch. Alert cooldown state is shared
// mutable data keyed by (branch, type); two concurrent runs for the same
// branch could both pass the dedup lookup before either inserts.
type Locker interface {
	Acquire(ctx context.Context, branchID string, ttl time.Duration) (release func(), ok bool, err error)
	Close() error
}

type redisLocker struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func New(log *logger.Logger) (Locker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_RUNLOCK_PREFIX"))
	if prefix == "" {
		prefix = "analytics:runlock"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisLocker{
		log:    log.With("service", "RunLocker"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (l *redisLocker) Acquire(ctx context.Context, branchID string, ttl time.Duration) (func(), bool, error) {
	key := l.prefix + ":" + branchID
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("runlock acquire: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// Only delete the lock if it is still ours; an expired lock may have
		// been re-acquired by another run.
		script := goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
end
return 0`)
		if err := script.Run(context.Background(), l.rdb, []string{key}, token).Err(); err != nil {
			l.log.Warn("runlock release failed", "branch_id", branchID, "error", err)
		}
	}
	return release, true, nil
}

func (l *redisLocker) Close() error {
	return l.rdb.Close()
}

// NoopLocker is used when Redis is not configured; single-process deployments
// already serialize branch runs through the job runner.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, branchID string, ttl time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

func (NoopLocker) Close() error { return nil }
