package service

import (
	"context"

	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records what the toolkit did to a database. Entries are
// written on the caller's transaction so they commit or roll back with it.
type AuditService interface {
	LogImport(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, checksum string, rows map[string]int, truncated bool) error
	LogSequenceResync(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, positions map[string]int64) error
	LogPolicyApply(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, tables int, statements int) error
	LogTruncate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, tables []string) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogImport records a completed import; its checksum is what the re-import
// guard compares against.
func (s *auditService) LogImport(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, checksum string, rows map[string]int, truncated bool) error {
	total := 0
	counts := make(map[string]interface{}, len(rows))
	for table, n := range rows {
		counts[table] = n
		total += n
	}

	return s.create(ctx, tx, userID, entity.AuditActionSeedImport, entity.JSON{
		"checksum":   checksum,
		"tables":     counts,
		"total_rows": total,
		"truncated":  truncated,
	})
}

func (s *auditService) LogSequenceResync(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, positions map[string]int64) error {
	metadata := make(entity.JSON, len(positions))
	for table, position := range positions {
		metadata[table] = position
	}
	return s.create(ctx, tx, userID, entity.AuditActionSequenceResync, entity.JSON{"sequences": metadata})
}

func (s *auditService) LogPolicyApply(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, tables int, statements int) error {
	return s.create(ctx, tx, userID, entity.AuditActionPolicyApply, entity.JSON{
		"tables":     tables,
		"statements": statements,
	})
}

func (s *auditService) LogTruncate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, tables []string) error {
	return s.create(ctx, tx, userID, entity.AuditActionSeedTruncate, entity.JSON{"tables": tables})
}

func (s *auditService) create(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
