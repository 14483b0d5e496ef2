package repository

import "gorm.io/gorm"

type PolicyRepository interface {
	Exec(db *gorm.DB, statements []string) error
}
