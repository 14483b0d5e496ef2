package repository

import (
	"errors"
	"fmt"

	"cosmetic-platform-dataset/internal/domain/catalog"
	domainRepo "cosmetic-platform-dataset/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errRollback rolls back the authenticated transaction once the answer is read
var errRollback = errors.New("rollback")

type integrityRepository struct{}

func NewIntegrityRepository() domainRepo.IntegrityRepository {
	return &integrityRepository{}
}

func (r *integrityRepository) CountRows(db *gorm.DB, table string) (int64, error) {
	var count int64
	err := db.Table(table).Count(&count).Error
	return count, err
}

func (r *integrityRepository) MaxID(db *gorm.DB, table string) (int64, error) {
	var maxID int64
	err := db.Table(table).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	return maxID, err
}

func (r *integrityRepository) Orphans(db *gorm.DB, table string, ref catalog.Reference, limit int) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT c.id::text FROM %s c LEFT JOIN %s p ON p.id = c.%s WHERE c.%s IS NOT NULL AND p.id IS NULL ORDER BY 1 LIMIT ?",
		quoteIdent(table), quoteIdent(ref.Parent), quoteIdent(ref.Column), quoteIdent(ref.Column),
	)
	rows, err := db.Raw(query, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// VisibleAs runs the lookup as the authenticated role with auth.uid() set to
// requester, inside a transaction that is always rolled back.
func (r *integrityRepository) VisibleAs(db *gorm.DB, table string, id any, requester uuid.UUID) (bool, error) {
	var count int64
	err := asAuthenticated(db, requester, func(tx *gorm.DB) error {
		return tx.Raw(fmt.Sprintf("SELECT count(*) FROM %s WHERE id = ?", quoteIdent(table)), id).Scan(&count).Error
	})
	return count > 0, err
}

// UpdatableAs writes the owner column back onto itself as requester and
// reports whether the row was updated. The write is rolled back.
func (r *integrityRepository) UpdatableAs(db *gorm.DB, table, ownerColumn string, id any, requester uuid.UUID) (bool, error) {
	var affected int64
	err := asAuthenticated(db, requester, func(tx *gorm.DB) error {
		col := quoteIdent(ownerColumn)
		res := tx.Exec(fmt.Sprintf("UPDATE %s SET %s = %s WHERE id = ?", quoteIdent(table), col, col), id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// asAuthenticated runs fn under SET LOCAL ROLE authenticated with the JWT
// claims Supabase's auth.uid() reads, then rolls the transaction back.
func asAuthenticated(db *gorm.DB, requester uuid.UUID, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET LOCAL ROLE authenticated").Error; err != nil {
			return err
		}
		claims := fmt.Sprintf(`{"sub":"%s","role":"authenticated"}`, requester)
		if err := tx.Exec(
			"SELECT set_config('request.jwt.claim.sub', ?, true), set_config('request.jwt.claims', ?, true)",
			requester.String(), claims,
		).Error; err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}
		return errRollback
	})
	if err != nil && !errors.Is(err, errRollback) {
		return err
	}
	return nil
}
