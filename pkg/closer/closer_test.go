package closer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(logger.NewNopLogger(), time.Second)

	var order []string
	for _, name := range []string{"db", "redis", "http"} {
		c.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "db"}, order)
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(logger.NewNopLogger(), time.Second)
	errBroken := errors.New("broken")

	closed := false
	c.Add("db", func(context.Context) error {
		closed = true
		return nil
	})
	c.Add("kafka", func(context.Context) error { return errBroken })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "kafka")
	assert.True(t, closed)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCloser(logger.NewNopLogger(), time.Second)

	calls := 0
	c.Add("db", func(context.Context) error {
		calls++
		return errors.New("once")
	})

	first := c.Close(context.Background())
	second := c.Close(context.Background())

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCloseForcesRemainingOnDeadline(t *testing.T) {
	c := NewCloser(logger.NewNopLogger(), time.Second)

	var dbClosed atomic.Bool
	release := make(chan struct{})

	c.Add("db", func(context.Context) error {
		dbClosed.Store(true)
		return nil
	})
	c.Add("worker", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	time.AfterFunc(50*time.Millisecond, func() { close(release) })

	require.NoError(t, c.Close(ctx))
	assert.True(t, dbClosed.Load())
}
