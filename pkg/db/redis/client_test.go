package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesto/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects to a running server", func(t *testing.T) {
		srv := miniredis.RunT(t)
		host, portStr, _ := strings.Cut(srv.Addr(), ":")
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		client, err := redis.NewClient(ctx, &redis.Config{Host: host, Port: port})
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		got, err := srv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)

		assert.NoError(t, client.Close())
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		client, err := redis.NewClient(ctx, &redis.Config{
			Host:        "127.0.0.1",
			Port:        1,
			DialTimeout: 100 * time.Millisecond,
		})

		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}

func TestConfigAddress(t *testing.T) {
	cfg := redis.Config{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Address())
}
