package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each session cart in a redis hash keyed by session
// ID, with a TTL refreshed on every write.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (map[int]int, error) {
	raw, err := r.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[int]int, len(raw))
	for field, value := range raw {
		pid, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty <= 0 {
			continue
		}
		out[pid] = qty
	}
	return out, nil
}

func (r *RedisRepository) IncrQuantity(ctx context.Context, sessionID string, productID, delta int) (int, error) {
	key := cartKey(sessionID)
	qty, err := r.client.HIncrBy(ctx, key, strconv.Itoa(productID), int64(delta)).Result()
	if err != nil {
		return 0, err
	}
	if qty <= 0 {
		if err := r.client.HDel(ctx, key, strconv.Itoa(productID)).Err(); err != nil {
			return 0, err
		}
		qty = 0
	}
	r.client.Expire(ctx, key, r.ttl)
	return int(qty), nil
}

func (r *RedisRepository) SetQuantity(ctx context.Context, sessionID string, productID, qty int) error {
	key := cartKey(sessionID)
	if qty <= 0 {
		return r.client.HDel(ctx, key, strconv.Itoa(productID)).Err()
	}
	if err := r.client.HSet(ctx, key, strconv.Itoa(productID), qty).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}

func (r *RedisRepository) Remove(ctx context.Context, sessionID string, productID int) error {
	return r.client.HDel(ctx, cartKey(sessionID), strconv.Itoa(productID)).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, cartKey(sessionID)).Err()
}
