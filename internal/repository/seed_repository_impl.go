package repository

import (
	"fmt"
	"reflect"
	"strings"

	"cosmetic-platform-dataset/internal/domain/catalog"
	domainRepo "cosmetic-platform-dataset/internal/domain/repository"

	"gorm.io/gorm"
)

type seedRepository struct{}

func NewSeedRepository() domainRepo.SeedRepository {
	return &seedRepository{}
}

func (r *seedRepository) Migrate(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}

// InsertRows copies the entity pointers into a typed slice so gorm batches
// them as one model. The seed rows themselves are left untouched.
func (r *seedRepository) InsertRows(db *gorm.DB, spec catalog.TableSpec, rows []any, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}

	elem := reflect.TypeOf(spec.New()).Elem()
	slice := reflect.MakeSlice(reflect.SliceOf(elem), 0, len(rows))
	for _, row := range rows {
		v := reflect.ValueOf(row)
		if v.Kind() != reflect.Ptr || v.Elem().Type() != elem {
			return fmt.Errorf("row of %s is %T, want *%s", spec.Name, row, elem.Name())
		}
		slice = reflect.Append(slice, v.Elem())
	}

	ptr := reflect.New(slice.Type())
	ptr.Elem().Set(slice)
	return db.Table(spec.Name).CreateInBatches(ptr.Interface(), batchSize).Error
}

func (r *seedRepository) Truncate(db *gorm.DB, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = quoteIdent(t)
	}
	return db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))).Error
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
