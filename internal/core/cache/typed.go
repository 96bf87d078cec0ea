package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Typed 某一类实体的读穿缓存，key 为 <prefix>:<kind>:<id>，值是 JSON。
// load 的错误原样返回，不做负缓存。
type Typed[T any] struct {
	c    *Cache
	kind string
	ttl  time.Duration
}

func NewTyped[T any](c *Cache, kind string, ttl time.Duration) *Typed[T] {
	return &Typed[T]{c: c, kind: kind, ttl: ttl}
}

func (t *Typed[T]) key(id uint) string { return t.c.Key(t.kind, fmt.Sprint(id)) }

func (t *Typed[T]) Get(ctx context.Context, id uint, load func(context.Context) (*T, error)) (*T, error) {
	b, err := t.c.GetOrLoad(ctx, t.key(id), t.ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	var out *T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode cached %s %d: %w", t.kind, id, err)
	}
	return out, nil
}

// Forget 写路径上调用，删失败交给 TTL 兜底
func (t *Typed[T]) Forget(ctx context.Context, ids ...uint) error {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = t.key(id)
	}
	return t.c.Del(ctx, keys...)
}
