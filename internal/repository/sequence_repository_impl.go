package repository

import (
	"database/sql"
	"fmt"

	domainRepo "cosmetic-platform-dataset/internal/domain/repository"

	"gorm.io/gorm"
)

type sequenceRepository struct{}

func NewSequenceRepository() domainRepo.SequenceRepository {
	return &sequenceRepository{}
}

func (r *sequenceRepository) Resync(db *gorm.DB, table string) (int64, error) {
	var position int64
	err := db.Raw(fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %s",
		quoteIdent(table),
	), table).Scan(&position).Error
	return position, err
}

type sequenceState struct {
	LastValue int64
	IsCalled  bool
}

func (r *sequenceRepository) Next(db *gorm.DB, table string) (int64, error) {
	var sequence sql.NullString
	if err := db.Raw("SELECT pg_get_serial_sequence(?, 'id')", table).Row().Scan(&sequence); err != nil {
		return 0, err
	}
	if !sequence.Valid {
		return 0, fmt.Errorf("%s.id has no sequence", table)
	}

	var state sequenceState
	if err := db.Raw(fmt.Sprintf("SELECT last_value, is_called FROM %s", sequence.String)).Scan(&state).Error; err != nil {
		return 0, err
	}
	if state.IsCalled {
		return state.LastValue + 1, nil
	}
	return state.LastValue, nil
}
