package usecase

import (
	"context"
	"errors"

	"cosmetic-platform-dataset/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDatabaseUnavailable is returned by operations that need a database when
// the process runs without one.
var ErrDatabaseUnavailable = errors.New("database is not configured")

func requireDB(db *gorm.DB) error {
	if db == nil {
		return ErrDatabaseUnavailable
	}
	return nil
}

// requesterID is the audit user for the current request, nil for CLI runs
// and non-user tokens.
func requesterID(ctx context.Context) *uuid.UUID {
	if requester, ok := middleware.GetRequesterFromContext(ctx); ok {
		return requester.UserID
	}
	return nil
}
