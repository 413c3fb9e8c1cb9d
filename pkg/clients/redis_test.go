package clients

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/cfg"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClientPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})

	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Close(context.Background()))

	assert.Error(t, client.Ping(context.Background()))
}
