package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // 一般用 app.name，多个服务共用一个 redis 时不串 key
}

type Cache struct {
	RDB    *redis.Client
	prefix string
	log    *zap.Logger
	sf     singleflight.Group
}

func New(o Options, l *zap.Logger) *Cache {
	if l == nil {
		l = zap.NewNop()
	}
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB}),
		prefix: o.Prefix,
		log:    l.Named("cache"),
	}
}

func (c *Cache) Key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		if k != "" {
			k += ":"
		}
		k += p
	}
	return k
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

// GetOrLoad 读缓存；未命中时 singleflight 合并回源并回写。Redis 故障按未命中处理，只记日志。
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	b, err := c.RDB.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return b, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if e := c.RDB.Set(ctx, key, b, ttl).Err(); e != nil {
			c.log.Warn("redis set failed", zap.String("key", key), zap.Error(e))
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.RDB.Del(ctx, keys...).Err()
}
