package repository

import "gorm.io/gorm"

type SequenceRepository interface {
	// Resync moves the id sequence of table to MAX(id) and returns the new
	// position; an empty table resets it so the next value is 1.
	Resync(db *gorm.DB, table string) (int64, error)
	// Next returns the value nextval would hand out, without consuming it
	Next(db *gorm.DB, table string) (int64, error)
}
