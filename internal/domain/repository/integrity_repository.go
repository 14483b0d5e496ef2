package repository

import (
	"cosmetic-platform-dataset/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntegrityRepository reads back what an import left in the database
type IntegrityRepository interface {
	CountRows(db *gorm.DB, table string) (int64, error)
	MaxID(db *gorm.DB, table string) (int64, error)
	// Orphans returns the ids of rows whose ref column points at a missing parent row
	Orphans(db *gorm.DB, table string, ref catalog.Reference, limit int) ([]string, error)
	// VisibleAs reports whether the row with id is visible to an
	// authenticated request whose auth.uid() is requester.
	VisibleAs(db *gorm.DB, table string, id any, requester uuid.UUID) (bool, error)
	// UpdatableAs reports whether the same request may update the row
	UpdatableAs(db *gorm.DB, table, ownerColumn string, id any, requester uuid.UUID) (bool, error)
}
