package presence

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "presence:"

	// memberTTL must exceed the gateway's ping period so a healthy
	// connection always refreshes before expiry.
	memberTTL = 3 * time.Minute

	opTimeout = 2 * time.Second
)

// RedisRegistry keeps each group as a Redis set so horizontally scaled
// gateway instances observe one consistent membership view.
type RedisRegistry struct {
	rdb *redis.Client
}

func NewRedisRegistry(rdb *redis.Client) *RedisRegistry {
	return &RedisRegistry{rdb: rdb}
}

func (r *RedisRegistry) Join(ctx context.Context, group, channel string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	key := keyPrefix + group
	pipe := r.rdb.TxPipeline()
	pipe.SAdd(ctx, key, channel)
	pipe.Expire(ctx, key, memberTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("ERROR: presence join %s failed: %v", group, err)
		return err
	}
	return nil
}

func (r *RedisRegistry) Leave(ctx context.Context, group, channel string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := r.rdb.SRem(ctx, keyPrefix+group, channel).Err(); err != nil {
		log.Printf("WARNING: presence leave %s failed: %v", group, err)
		return err
	}
	return nil
}

func (r *RedisRegistry) IsEmpty(ctx context.Context, group string) bool {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.rdb.SCard(ctx, keyPrefix+group).Result()
	if err != nil {
		log.Printf("WARNING: presence check %s failed, assuming empty: %v", group, err)
		return true
	}
	return n == 0
}

func (r *RedisRegistry) Touch(ctx context.Context, groups []string) error {
	if len(groups) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	pipe := r.rdb.Pipeline()
	for _, group := range groups {
		pipe.Expire(ctx, keyPrefix+group, memberTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("WARNING: presence touch failed: %v", err)
		return err
	}
	return nil
}
