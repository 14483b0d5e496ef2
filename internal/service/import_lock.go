package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrImportLocked is returned while another import holds the lock
var ErrImportLocked = errors.New("another import is in progress")

const (
	importLockKey = "seedctl:import:lock"

	// Timeout for individual Redis operations
	redisLockTimeout = 5 * time.Second
)

// releaseScript deletes the lock only if this holder still owns it, so an
// import that outlived its TTL cannot release a newer holder's lock.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// ReleaseFunc gives the lock back
type ReleaseFunc func(ctx context.Context) error

// ImportLock serialises imports against one database
type ImportLock interface {
	Acquire(ctx context.Context) (ReleaseFunc, error)
}

// NewImportLock uses redis when a client is given so that imports from
// different hosts exclude each other, and an in-process lock otherwise.
func NewImportLock(client *redis.Client, ttl time.Duration, log *logrus.Logger) ImportLock {
	if client == nil {
		return &localImportLock{}
	}
	return &redisImportLock{client: client, ttl: ttl, log: log}
}

type redisImportLock struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func (l *redisImportLock) Acquire(ctx context.Context) (ReleaseFunc, error) {
	token := uuid.NewString()

	opCtx, cancel := context.WithTimeout(ctx, redisLockTimeout)
	defer cancel()

	ok, err := l.client.SetNX(opCtx, importLockKey, token, l.ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire import lock: %+v", err)
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return nil, ErrImportLocked
	}

	return func(ctx context.Context) error {
		opCtx, cancel := context.WithTimeout(ctx, redisLockTimeout)
		defer cancel()

		if err := releaseScript.Run(opCtx, l.client, []string{importLockKey}, token).Err(); err != nil {
			l.log.Warnf("Failed to release import lock: %+v", err)
			return fmt.Errorf("release import lock: %w", err)
		}
		return nil
	}, nil
}

type localImportLock struct {
	mu sync.Mutex
}

func (l *localImportLock) Acquire(ctx context.Context) (ReleaseFunc, error) {
	if !l.mu.TryLock() {
		return nil, ErrImportLocked
	}
	var once sync.Once
	return func(context.Context) error {
		once.Do(l.mu.Unlock)
		return nil
	}, nil
}
