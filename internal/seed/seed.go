// Package seed holds the dataset snapshot: one YAML file per table with the
// declared row count and the literal rows, decoded into entities.
package seed

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"cosmetic-platform-dataset/internal/domain/catalog"

	"github.com/cespare/xxhash/v2"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var (
	ErrDataFormat    = errors.New("malformed seed data")
	ErrTableMismatch = errors.New("seed file declares a different table")
)

type file struct {
	Table    string           `yaml:"table"`
	RowCount int              `yaml:"row_count"`
	Rows     []map[string]any `yaml:"rows"`
}

// Table is the seeded content of one catalog table
type Table struct {
	Spec     catalog.TableSpec
	Declared int
	Rows     []any
}

// Dataset is the full snapshot in import order
type Dataset struct {
	tables []*Table
	byName map[string]*Table
}

// Default loads the snapshot embedded in the binary
func Default() (*Dataset, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads <table>.yaml for every catalog table from fsys. A table without
// a file is empty and declares zero rows.
func Load(fsys fs.FS) (*Dataset, error) {
	order, err := catalog.ImportOrder()
	if err != nil {
		return nil, err
	}

	ds := &Dataset{byName: make(map[string]*Table, len(order))}
	for _, spec := range order {
		t := &Table{Spec: spec}
		ds.tables = append(ds.tables, t)
		ds.byName[spec.Name] = t

		content, err := fs.ReadFile(fsys, spec.Name+".yaml")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", spec.Name, err)
		}

		var f file
		if err := yaml.Unmarshal(content, &f); err != nil {
			return nil, fmt.Errorf("%w: %s.yaml: %v", ErrDataFormat, spec.Name, err)
		}
		if f.Table != "" && f.Table != spec.Name {
			return nil, fmt.Errorf("%w: %s.yaml declares %s", ErrTableMismatch, spec.Name, f.Table)
		}

		t.Declared = f.RowCount
		for i, raw := range f.Rows {
			row, err := DecodeRow(spec, raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: %v", ErrDataFormat, spec.Name, i+1, err)
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return ds, nil
}

// DecodeRow converts one raw YAML row into the table's entity. Keys follow
// the entity json tags; unknown keys are rejected.
func DecodeRow(spec catalog.TableSpec, raw map[string]any) (any, error) {
	row := spec.New()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      row,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			timeHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return row, nil
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

var decimalHook mapstructure.DecodeHookFuncType = func(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(v)
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return data, nil
}

var timeHook mapstructure.DecodeHookFuncType = func(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return time.Parse(time.RFC3339, v)
	case time.Time:
		return v, nil
	}
	return data, nil
}

// Tables returns the tables in import order
func (d *Dataset) Tables() []*Table {
	return d.tables
}

// Table looks up a table by name
func (d *Dataset) Table(name string) (*Table, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// TotalRows counts rows across all tables
func (d *Dataset) TotalRows() int {
	total := 0
	for _, t := range d.tables {
		total += len(t.Rows)
	}
	return total
}

// Checksum fingerprints the dataset so an import can tell whether the same
// snapshot was already loaded.
func (d *Dataset) Checksum() (string, error) {
	h := xxhash.New()
	for _, t := range d.tables {
		if _, err := h.WriteString(t.Spec.Name); err != nil {
			return "", err
		}
		for _, row := range t.Rows {
			b, err := json.Marshal(row)
			if err != nil {
				return "", fmt.Errorf("failed to encode %s row: %w", t.Spec.Name, err)
			}
			if _, err := h.Write(b); err != nil {
				return "", err
			}
		}
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Values returns the column value of every row, in row order
func (t *Table) Values(column string) ([]any, error) {
	col, err := catalog.ColumnByName(t.Spec, column)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = col.Value(row)
	}
	return values, nil
}

// IDs returns the set of primary key values, keyed by Key
func (t *Table) IDs() (map[string]bool, error) {
	values, err := t.Values("id")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(values))
	for _, v := range values {
		if v != nil {
			ids[Key(v)] = true
		}
	}
	return ids, nil
}

// MaxID returns the largest integer id, or 0 for an empty or uuid-keyed table
func (t *Table) MaxID() int {
	maxID := 0
	values, err := t.Values("id")
	if err != nil {
		return 0
	}
	for _, v := range values {
		if id, ok := v.(int); ok && id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Key normalises an id value (int or uuid) for set membership
func Key(v any) string {
	return fmt.Sprint(v)
}
