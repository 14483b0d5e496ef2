package repository

import (
	"cosmetic-platform-dataset/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, limit int) ([]entity.AuditLog, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindLatestByAction(db *gorm.DB, action string) (*entity.AuditLog, error)
}
