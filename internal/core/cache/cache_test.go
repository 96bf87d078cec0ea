package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// 127.0.0.1:1 上没有 redis，读写都失败，回源路径照常工作
func unreachable(t *testing.T, prefix string) *Cache {
	t.Helper()
	c := New(Options{Addr: "127.0.0.1:1", Prefix: prefix}, nil)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKey(t *testing.T) {
	assert.Equal(t, "course:user:42", unreachable(t, "course").Key("user", "42"))
	assert.Equal(t, "user:42", unreachable(t, "").Key("user", "42"))

	typed := NewTyped[item](unreachable(t, "course"), "user", time.Minute)
	assert.Equal(t, "course:user:7", typed.key(7))
}

func TestTyped_FallsBackWhenRedisDown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	typed := NewTyped[item](unreachable(t, "t"), "item", time.Minute)

	var calls atomic.Int32
	got, err := typed.Get(ctx, 3, func(context.Context) (*item, error) {
		calls.Add(1)
		return &item{ID: 3, Name: "x"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 3, Name: "x"}, got)
	assert.EqualValues(t, 1, calls.Load())

	missing := errors.New("missing")
	_, err = typed.Get(ctx, 4, func(context.Context) (*item, error) { return nil, missing })
	assert.ErrorIs(t, err, missing)

	assert.Error(t, typed.Forget(ctx, 3))
	assert.NoError(t, typed.Forget(ctx))
}
