package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

// RunCache 缓存单次模拟的完整结果，模拟记录写入后不再修改，所以不需要失效逻辑
type RunCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewRunCache(rdb *redis.Client, ttl, timeout time.Duration) *RunCache {
	return &RunCache{
		rdb:     rdb,
		ttl:     ttl,
		timeout: timeout,
	}
}

func runKey(id int64) string {
	return fmt.Sprintf("simulation_run_%d", id)
}

// Get 在缓存未命中时返回 (nil, false, nil)
func (c *RunCache) Get(ctx context.Context, id int64) (*domain.SimulationRun, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, runKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	run := &domain.SimulationRun{}
	if err := json.Unmarshal(data, run); err != nil {
		return nil, false, err
	}

	return run, true, nil
}

func (c *RunCache) Set(ctx context.Context, run *domain.SimulationRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.rdb.Set(ctx, runKey(run.ID), data, c.ttl).Err()
}
