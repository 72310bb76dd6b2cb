package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/redissvc"
)

const (
	movementSeqKey    = "movements:seq"
	movementKeyPrefix = "movements:product:"
)

// RedisMovementRepository keeps one list of JSON-encoded movements per product.
type RedisMovementRepository struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisMovementRepository(rs *redissvc.RedisService) *RedisMovementRepository {
	return &RedisMovementRepository{rdb: rs.Rdb(), ctx: rs.Ctx()}
}

func (r *RedisMovementRepository) Log(m models.Movement) error {
	id, err := r.rdb.Incr(r.ctx, movementSeqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate movement id: %w", err)
	}
	m.ID = int(id)

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode movement: %w", err)
	}

	if err := r.rdb.RPush(r.ctx, movementKeyPrefix+models.NameKey(m.ProductName), payload).Err(); err != nil {
		return fmt.Errorf("failed to store movement: %w", err)
	}
	return nil
}

func (r *RedisMovementRepository) GetByProduct(name string, mf MovementFilter) ([]models.Movement, int, error) {
	raw, err := r.rdb.LRange(r.ctx, movementKeyPrefix+models.NameKey(name), 0, -1).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read movements: %w", err)
	}

	var filtered []models.Movement
	for i := len(raw) - 1; i >= 0; i-- {
		var m models.Movement
		if err := json.Unmarshal([]byte(raw[i]), &m); err != nil {
			return nil, 0, fmt.Errorf("failed to decode movement: %w", err)
		}
		if mf.matches(m.CreatedAt) {
			filtered = append(filtered, m)
		}
	}

	start, end := mf.page(len(filtered))
	return filtered[start:end], len(filtered), nil
}

func (r *RedisMovementRepository) Count() (int, error) {
	n, err := r.rdb.Get(r.ctx, movementSeqKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count movements: %w", err)
	}
	return n, nil
}
