package catalog

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

var schemaCache sync.Map

// Column is the storage view of one entity field, read from its gorm tags
type Column struct {
	Name          string
	Type          string
	PrimaryKey    bool
	AutoIncrement bool
	NotNull       bool
	Unique        bool
	Index         bool
	Default       string
	DataType      string

	field *schema.Field
}

// Value extracts the column's value from an entity pointer. Pointer fields
// are dereferenced and a nil pointer comes back as nil.
func (c Column) Value(row any) any {
	v, _ := c.field.ValueOf(context.Background(), reflect.ValueOf(row))
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}

// Columns parses the entity behind t into its ordered column list
func Columns(t TableSpec) ([]Column, error) {
	sch, err := schema.Parse(t.New(), &schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema of %s: %w", t.Name, err)
	}

	columns := make([]Column, 0, len(sch.DBNames))
	for _, name := range sch.DBNames {
		f := sch.FieldsByDBName[name]
		col := Column{
			Name:          f.DBName,
			Type:          strings.ToUpper(f.TagSettings["TYPE"]),
			PrimaryKey:    f.PrimaryKey,
			AutoIncrement: f.AutoIncrement,
			NotNull:       f.NotNull,
			field:         f,
		}
		if _, ok := f.TagSettings["UNIQUEINDEX"]; ok || f.Unique {
			col.Unique = true
		}
		if _, ok := f.TagSettings["INDEX"]; ok {
			col.Index = true
		}
		col.DataType = string(f.DataType)
		col.Default = f.TagSettings["DEFAULT"]
		if col.Default == "" && (f.AutoCreateTime > 0 || f.AutoUpdateTime > 0) {
			col.Default = "now()"
		}
		if col.Type == "" && col.PrimaryKey && col.AutoIncrement {
			col.Type = "SERIAL"
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// ColumnByName returns the named column of t
func ColumnByName(t TableSpec, name string) (Column, error) {
	columns, err := Columns(t)
	if err != nil {
		return Column{}, err
	}
	for _, c := range columns {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("column %s.%s not found", t.Name, name)
}
