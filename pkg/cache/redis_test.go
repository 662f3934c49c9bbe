package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.([]byte)
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := &RedisCache{client: fake, prefix: "dgraph:"}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("miss: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("grid"), TTLLayout); err != nil {
		t.Fatal(err)
	}
	if _, ok := fake.data["dgraph:k"]; !ok {
		t.Error("key should be stored with prefix")
	}
	if fake.ttl["dgraph:k"] != TTLLayout {
		t.Errorf("ttl = %v", fake.ttl["dgraph:k"])
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "grid" {
		t.Errorf("hit: data=%q hit=%v err=%v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
}

func TestRedisCacheBackendError(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	c := &RedisCache{client: fake}

	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrBackend) || !IsRetryable(err) {
		t.Errorf("Get error = %v, want retryable ErrBackend", err)
	}
	if err := c.Set(ctx, "k", nil, 0); !IsRetryable(err) {
		t.Errorf("Set error = %v, want retryable", err)
	}
	if err := c.Delete(ctx, "k"); !IsRetryable(err) {
		t.Errorf("Delete error = %v, want retryable", err)
	}
}
