package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImportLock(t *testing.T) {
	ctx := context.Background()
	lock := NewImportLock(nil, time.Minute, logrus.New())

	release, err := lock.Acquire(ctx)
	require.NoError(t, err)

	_, err = lock.Acquire(ctx)
	assert.ErrorIs(t, err, ErrImportLocked)

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx), "releasing twice is a no-op")

	again, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}
