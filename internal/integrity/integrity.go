// Package integrity validates the seed snapshot without a database: every
// reference resolves, declared row counts hold, ids are unique, rows pass
// entity validation and sequences can be resynchronised past the seeded ids.
package integrity

import (
	"fmt"

	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/seed"
	"cosmetic-platform-dataset/pkg/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var maxRating = decimal.NewFromInt(5)

// SequenceStep is the setval target of one serial table
type SequenceStep struct {
	Table  string `json:"table"`
	MaxID  int    `json:"max_id"`
	NextID int    `json:"next_id"`
}

// SequencePlan lists, for every serial table, the id the first insert after
// import must receive.
func SequencePlan(ds *seed.Dataset) []SequenceStep {
	var plan []SequenceStep
	for _, t := range ds.Tables() {
		if !t.Spec.Serial {
			continue
		}
		maxID := t.MaxID()
		plan = append(plan, SequenceStep{Table: t.Spec.Name, MaxID: maxID, NextID: maxID + 1})
	}
	return plan
}

type Checker struct {
	validator *validator.CustomValidator
}

// NewChecker registers the cross-field entity rules on v
func NewChecker(v *validator.CustomValidator) *Checker {
	RegisterRules(v)
	return &Checker{validator: v}
}

// RegisterRules adds the struct-level rules that field tags cannot express
func RegisterRules(v *validator.CustomValidator) {
	v.RegisterStructRule(func(sl playground.StructLevel) {
		p := sl.Current().Interface().(entity.Procedure)
		if !p.HasValidCostRange() {
			sl.ReportError(p.CostMax, "CostMax", "cost_max", "cost_range", "")
		}
	}, entity.Procedure{})
	v.RegisterStructRule(func(sl playground.StructLevel) {
		d := sl.Current().Interface().(entity.Doctor)
		if d.Rating.IsNegative() || d.Rating.GreaterThan(maxRating) {
			sl.ReportError(d.Rating, "Rating", "rating", "rating_range", "")
		}
		if d.IsVerified && d.VerifiedAt == nil {
			sl.ReportError(d.VerifiedAt, "VerifiedAt", "verified_at", "required_if_verified", "")
		}
	}, entity.Doctor{})
	v.RegisterStructRule(func(sl playground.StructLevel) {
		a := sl.Current().Interface().(entity.FaceScanAnalysis)
		if a.SymmetryScore.IsNegative() || a.SymmetryScore.GreaterThan(decimal.NewFromInt(100)) {
			sl.ReportError(a.SymmetryScore, "SymmetryScore", "symmetry_score", "score_range", "")
		}
	}, entity.FaceScanAnalysis{})
	v.RegisterStructRule(func(sl playground.StructLevel) {
		m := sl.Current().Interface().(entity.Message)
		if m.RecipientID == m.UserID {
			sl.ReportError(m.RecipientID, "RecipientID", "recipient_id", "nefield", "UserID")
		}
	}, entity.Message{})
}

// Check runs every offline check over ds
func (c *Checker) Check(ds *seed.Dataset) *Report {
	report := NewReport()

	ids := make(map[string]map[string]bool)
	for _, t := range ds.Tables() {
		set, err := t.IDs()
		if err != nil {
			report.Add(Finding{Kind: KindInvalidRow, Table: t.Spec.Name, Column: "id", Message: err.Error()})
			continue
		}
		ids[t.Spec.Name] = set
	}

	next := make(map[string]int)
	for _, step := range SequencePlan(ds) {
		next[step.Table] = step.NextID
	}

	for _, t := range ds.Tables() {
		name := t.Spec.Name
		report.AddTable(TableSummary{
			Name:     name,
			Rows:     len(t.Rows),
			Declared: t.Declared,
			MaxID:    t.MaxID(),
			NextID:   next[name],
		})

		if len(t.Rows) != t.Declared {
			report.Add(Finding{
				Kind:    KindRowCountMismatch,
				Table:   name,
				Message: fmt.Sprintf("declared %d rows, found %d", t.Declared, len(t.Rows)),
			})
		}

		c.checkRows(report, t)
		checkReferences(report, t, ids)
	}

	return report
}

func (c *Checker) checkRows(report *Report, t *seed.Table) {
	idValues, err := t.Values("id")
	if err != nil {
		return
	}

	seen := make(map[string]bool, len(idValues))
	for i, row := range t.Rows {
		rowID := seed.Key(idValues[i])
		if seen[rowID] {
			report.Add(Finding{Kind: KindDuplicateID, Table: t.Spec.Name, Column: "id", RowID: rowID, Message: "id appears more than once"})
		}
		seen[rowID] = true

		if err := c.validator.Validate(row); err != nil {
			for field, msg := range c.validator.FormatValidationErrors(err) {
				report.Add(Finding{Kind: KindInvalidRow, Table: t.Spec.Name, Column: field, RowID: rowID, Message: msg})
			}
		}
	}
}

func checkReferences(report *Report, t *seed.Table, ids map[string]map[string]bool) {
	idValues, err := t.Values("id")
	if err != nil {
		return
	}

	for _, ref := range t.Spec.References {
		values, err := t.Values(ref.Column)
		if err != nil {
			report.Add(Finding{Kind: KindInvalidRow, Table: t.Spec.Name, Column: ref.Column, Message: err.Error()})
			continue
		}
		parent := ids[ref.Parent]
		for i, v := range values {
			rowID := seed.Key(idValues[i])
			if v == nil {
				if !ref.Nullable {
					report.Add(Finding{Kind: KindMissingReference, Table: t.Spec.Name, Column: ref.Column, RowID: rowID, Message: "reference is null"})
				}
				continue
			}
			if !parent[seed.Key(v)] {
				report.Add(Finding{
					Kind:    KindMissingReference,
					Table:   t.Spec.Name,
					Column:  ref.Column,
					RowID:   rowID,
					Message: fmt.Sprintf("%s %v not found in %s", ref.Column, v, ref.Parent),
				})
			}
		}
	}
}
