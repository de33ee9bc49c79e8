package cache

import (
	"context"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLockClient emulates SETNX and the release script against a map.
type fakeLockClient struct {
	keys map[string]string
}

func newFakeLockClient() *fakeLockClient {
	return &fakeLockClient{keys: map[string]string{}}
}

func (f *fakeLockClient) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeLockClient) release(keys []string, args []interface{}) *redis.Cmd {
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeLockClient) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.release(keys, args)
}

func (f *fakeLockClient) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.release(keys, args)
}

func (f *fakeLockClient) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeLockClient) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...interface{}) *redis.Cmd {
	return f.EvalSha(ctx, sha1, keys, args...)
}

func (f *fakeLockClient) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeLockClient) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("sha", nil)
}

func TestLockerTryLockAndRelease(t *testing.T) {
	client := newFakeLockClient()
	locker := NewLocker(client)
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, "seed:demo", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = locker.TryLock(ctx, "seed:demo", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, locker.Release(ctx, "seed:demo", "someone-else"))
	assert.Contains(t, client.keys, "seed:demo")

	require.NoError(t, locker.Release(ctx, "seed:demo", token))
	assert.NotContains(t, client.keys, "seed:demo")
}

func TestLockerValidation(t *testing.T) {
	locker := NewLocker(newFakeLockClient())
	ctx := context.Background()

	_, _, err := locker.TryLock(ctx, "", time.Minute)
	assert.Error(t, err)
	_, _, err = locker.TryLock(ctx, "k", 0)
	assert.Error(t, err)
}

func TestNilLocker(t *testing.T) {
	var locker *Locker
	_, ok, err := locker.TryLock(context.Background(), "k", time.Second)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, locker.Release(context.Background(), "k", "t"))
	assert.Nil(t, NewLocker(nil))
}
