package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `validate:"required"`
	Email  string `validate:"omitempty,email"`
	Status string `validate:"omitempty,oneof=open closed"`
	Min    int
	Max    int
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "not-an-email", Status: "pending"})
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "Name is required", msgs["Name"])
	assert.Equal(t, "Email must be a valid email address", msgs["Email"])
	assert.Equal(t, "Status must be one of: open closed", msgs["Status"])
}

func TestRegisterStructRule(t *testing.T) {
	v := NewValidator()
	v.RegisterStructRule(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(sample)
		if s.Min > s.Max {
			sl.ReportError(s.Min, "Min", "Min", "range", "")
		}
	}, sample{})

	require.NoError(t, v.Validate(&sample{Name: "ok", Min: 1, Max: 2}))

	err := v.Validate(&sample{Name: "bad", Min: 5, Max: 2})
	require.Error(t, err)
	assert.Equal(t, "Min is invalid (range)", v.FormatValidationErrors(err)["Min"])
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.FormatValidationErrors(assert.AnError))
}
