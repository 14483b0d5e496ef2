package repository

import (
	"cosmetic-platform-dataset/internal/domain/catalog"

	"gorm.io/gorm"
)

// SeedRepository writes the dataset tables
type SeedRepository interface {
	Migrate(db *gorm.DB, models ...any) error
	InsertRows(db *gorm.DB, spec catalog.TableSpec, rows []any, batchSize int) error
	Truncate(db *gorm.DB, tables []string) error
}
