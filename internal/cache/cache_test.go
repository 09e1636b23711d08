package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Hit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb, time.Minute)

	mock.ExpectGet("balance:u1").SetVal("125")

	points, ok := c.Get(context.Background(), "u1")
	assert.True(t, ok)
	assert.Equal(t, int64(125), points)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissAndFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb, time.Minute)

	mock.ExpectGet("balance:u1").RedisNil()

	_, ok := c.Get(context.Background(), "u1")
	assert.False(t, ok)

	mock.ExpectGet("balance:u2").SetErr(assert.AnError)

	_, ok = c.Get(context.Background(), "u2")
	assert.False(t, ok)
}

func TestGet_BadPayloadIsMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb, time.Minute)

	mock.ExpectGet("balance:u1").SetVal("not-a-number")

	_, ok := c.Get(context.Background(), "u1")
	assert.False(t, ok)
}

func TestSetAndInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := NewWithClient(rdb, time.Minute)

	mock.ExpectSet("balance:u1", int64(200), time.Minute).SetVal("OK")
	c.Set(context.Background(), "u1", 200)

	mock.ExpectDel("balance:u1").SetVal(1)
	c.Invalidate(context.Background(), "u1")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *BalanceCache

	_, ok := c.Get(context.Background(), "u1")
	assert.False(t, ok)
	c.Set(context.Background(), "u1", 10)
	c.Invalidate(context.Background(), "u1")
	assert.NoError(t, c.Close())
}
