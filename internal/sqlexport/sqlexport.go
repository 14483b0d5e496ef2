// Package sqlexport renders the dataset in its SQL console form: one file
// per table, the concatenated import script and the operator runbook.
package sqlexport

import (
	"fmt"
	"strings"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/seed"
)

const (
	BundleFile   = "import_to_supabase.sql"
	PoliciesFile = "rls_policies.sql"
	RunbookFile  = "README.md"
)

// TableFile is the name of the per-table script
func TableFile(name string) string {
	return name + ".sql"
}

// CreateTable renders the CREATE TABLE IF NOT EXISTS statement and indexes
// for spec. References are plain columns without constraints and columns
// have no defaults; Literal fills missing values in instead.
func CreateTable(spec catalog.TableSpec) (string, error) {
	columns, err := catalog.Columns(spec)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", spec.Name)
	for i, c := range columns {
		b.WriteString("  ")
		b.WriteString(columnDefinition(c))
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")

	for _, c := range columns {
		if c.Index && !c.Unique {
			fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s);\n", spec.Name, c.Name, spec.Name, c.Name)
		}
	}
	return b.String(), nil
}

func columnDefinition(c catalog.Column) string {
	parts := []string{c.Name, columnType(c)}
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	} else {
		if c.NotNull {
			parts = append(parts, "NOT NULL")
		}
		if c.Unique {
			parts = append(parts, "UNIQUE")
		}
	}
	return strings.Join(parts, " ")
}

func columnType(c catalog.Column) string {
	if c.Type != "" {
		return c.Type
	}
	switch c.DataType {
	case "bool":
		return "BOOLEAN"
	case "int", "uint":
		return "INTEGER"
	case "float":
		return "DOUBLE PRECISION"
	case "time":
		return "TIMESTAMPTZ"
	case "bytes":
		return "BYTEA"
	}
	return "TEXT"
}

// Insert renders one INSERT statement for row
func Insert(spec catalog.TableSpec, columns []catalog.Column, row any) (string, error) {
	names := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, c := range columns {
		lit, err := Literal(c, c.Value(row))
		if err != nil {
			return "", fmt.Errorf("%s: %w", spec.Name, err)
		}
		names[i] = c.Name
		values[i] = lit
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", spec.Name, strings.Join(names, ", "), strings.Join(values, ", ")), nil
}

// Setval renders the sequence resync for a serial table after literal ids
// were inserted.
func Setval(table string, maxID int) string {
	return fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), %d, true);", table, maxID)
}

// RenderTable renders the standalone script for one table
func RenderTable(t *seed.Table) (string, error) {
	columns, err := catalog.Columns(t.Spec)
	if err != nil {
		return "", err
	}
	ddl, err := CreateTable(t.Spec)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Table: %s\n", t.Spec.Name)
	fmt.Fprintf(&b, "-- Row count: %d\n\n", len(t.Rows))
	b.WriteString(ddl)

	if len(t.Rows) > 0 {
		b.WriteString("\n")
		for _, row := range t.Rows {
			stmt, err := Insert(t.Spec, columns, row)
			if err != nil {
				return "", err
			}
			b.WriteString(stmt)
			b.WriteString("\n")
		}
		if t.Spec.Serial {
			b.WriteString("\n")
			b.WriteString(Setval(t.Spec.Name, t.MaxID()))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// RenderBundle concatenates every table script in import order, followed
// by the policy script, into one psql-runnable file.
func RenderBundle(ds *seed.Dataset) (string, error) {
	var b strings.Builder
	b.WriteString("-- Cosmetic platform dataset import\n")
	fmt.Fprintf(&b, "-- Tables: %d, rows: %d\n", len(ds.Tables()), ds.TotalRows())
	b.WriteString("-- Run with: psql \"$DATABASE_URL\" -f " + BundleFile + "\n")
	b.WriteString("-- psql only: the web SQL editor rejects the \\set and \\echo meta-commands.\n")
	b.WriteString("-- INSERT statements are not idempotent; run against an empty database.\n\n")
	b.WriteString("\\set ON_ERROR_STOP on\n")
	b.WriteString("BEGIN;\n")

	for _, t := range ds.Tables() {
		script, err := RenderTable(t)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n\\echo 'Importing %s (%d rows)...'\n", t.Spec.Name, len(t.Rows))
		b.WriteString(script)
	}

	b.WriteString("\nCOMMIT;\n\n")
	b.WriteString("\\echo 'Applying row level security policies...'\n")
	b.WriteString(policy.Render(specs(ds)))
	b.WriteString("\n\\echo 'Import complete.'\n")
	return b.String(), nil
}

func specs(ds *seed.Dataset) []catalog.TableSpec {
	out := make([]catalog.TableSpec, len(ds.Tables()))
	for i, t := range ds.Tables() {
		out[i] = t.Spec
	}
	return out
}
