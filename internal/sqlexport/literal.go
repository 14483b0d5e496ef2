package sqlexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnsupportedValue = errors.New("value has no SQL literal form")

const timestampLayout = "2006-01-02 15:04:05.999999-07:00"

// Literal renders v as a Postgres literal for column col. A missing value
// takes the column's default inline, or NULL when the column is nullable, so
// every INSERT spells out each value and the tables carry no DEFAULT clause.
func Literal(col catalog.Column, v any) (string, error) {
	if isUnset(v) {
		if col.Default != "" {
			return defaultLiteral(col.Default), nil
		}
		if !col.NotNull && !col.PrimaryKey {
			return "NULL", nil
		}
	}

	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case decimal.Decimal:
		return x.String(), nil
	case string:
		return Quote(x), nil
	case uuid.UUID:
		return Quote(x.String()), nil
	case time.Time:
		if x.IsZero() {
			return "NULL", nil
		}
		return Quote(x.UTC().Format(timestampLayout)), nil
	case entity.JSON:
		if len(x) == 0 {
			return "NULL", nil
		}
		b, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", col.Name, err)
		}
		return Quote(string(b)), nil
	}
	return "", fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, col.Name, v)
}

func isUnset(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case time.Time:
		return x.IsZero()
	}
	return false
}

// defaultLiteral turns a gorm default tag into its SQL form. Constants are
// rendered as literals and expressions such as now() are kept verbatim.
func defaultLiteral(def string) string {
	switch strings.ToLower(def) {
	case "true":
		return "TRUE"
	case "false":
		return "FALSE"
	}
	return def
}

// Quote wraps s in single quotes, doubling embedded quotes
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
