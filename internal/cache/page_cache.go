// Package cache stores rendered task pages in Redis. Every mutation bumps a
// generation counter, so stale pages become unreachable without a key scan.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nabeel-hussain/ToDoApp/internal/application/components/logging"
	"github.com/nabeel-hussain/ToDoApp/internal/application/components/redis"
	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
	bizConsts "github.com/nabeel-hussain/ToDoApp/internal/consts"
	"github.com/nabeel-hussain/ToDoApp/internal/model"
	"github.com/nabeel-hussain/ToDoApp/internal/query"
)

type PageCache interface {
	core.Component

	// Generation is read once per lookup, before the store read. A page built
	// from that read is stored under the same generation, so a mutation that
	// lands in between leaves it unreachable.
	Generation(ctx context.Context) (int64, error)
	// Get reports a miss as (nil, false, nil).
	Get(ctx context.Context, gen int64, req model.PageRequest) (*model.PagedResult[*model.Task], bool, error)
	Put(ctx context.Context, gen int64, req model.PageRequest, page *model.PagedResult[*model.Task]) error
	// Invalidate drops every cached page.
	Invalidate(ctx context.Context) error
}

type RedisPageCache struct {
	*core.BaseComponent
	RedisComp *redis.RedisComponent `infra:"dep:redis"`

	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisPageCache(prefix string, ttl time.Duration, deps ...string) *RedisPageCache {
	return &RedisPageCache{
		BaseComponent: core.NewBaseComponent(bizConsts.COMP_CACHE_TASK_PAGE, deps...),
		prefix:        strings.TrimSuffix(prefix, ":"),
		ttl:           ttl,
	}
}

// NewRedisPageCacheWithClient skips the component lookup in Start.
func NewRedisPageCacheWithClient(client goredis.UniversalClient, prefix string, ttl time.Duration) *RedisPageCache {
	c := NewRedisPageCache(prefix, ttl)
	c.client = client
	return c
}

func (c *RedisPageCache) Start(ctx context.Context) error {
	if c.client == nil {
		if c.RedisComp == nil || c.RedisComp.Client() == nil {
			return fmt.Errorf("page cache: redis client not available")
		}
		c.client = c.RedisComp.Client()
	}
	logging.Info(ctx, "task page cache ready", zap.String("prefix", c.prefix), zap.Duration("ttl", c.ttl))
	return c.BaseComponent.Start(ctx)
}

func (c *RedisPageCache) Stop(ctx context.Context) error {
	return c.BaseComponent.Stop(ctx)
}

func (c *RedisPageCache) genKey() string { return c.prefix + ":gen" }

func (c *RedisPageCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisPageCache) Get(ctx context.Context, gen int64, req model.PageRequest) (*model.PagedResult[*model.Task], bool, error) {
	raw, err := c.client.Get(ctx, PageKey(c.prefix, gen, req)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var page model.PagedResult[*model.Task]
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, fmt.Errorf("decode cached page: %w", err)
	}
	return &page, true, nil
}

func (c *RedisPageCache) Put(ctx context.Context, gen int64, req model.PageRequest, page *model.PagedResult[*model.Task]) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PageKey(c.prefix, gen, req), raw, c.ttl).Err()
}

func (c *RedisPageCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.genKey()).Err()
}

// PageKey is <prefix>:page:<gen>:<sha1 of the canonical request>.
// The sort pair is compared case-insensitively and blank search text counts as
// none, so requests that execute identically share a key.
func PageKey(prefix string, gen int64, req model.PageRequest) string {
	canon := fmt.Sprintf("%d|%d|%s|%s|%s|%s",
		req.PageNumber, req.PageSize,
		strings.ToLower(strings.TrimSpace(req.SortBy)),
		strings.ToLower(strings.TrimSpace(req.SortDirection)),
		req.Status, query.CriteriaOf(req).Search)
	sum := sha1.Sum([]byte(canon))
	return fmt.Sprintf("%s:page:%d:%s", prefix, gen, hex.EncodeToString(sum[:]))
}
