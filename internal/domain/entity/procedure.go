package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procedure is a cosmetic treatment with its cost range and recovery estimates
type Procedure struct {
	ID                int             `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Name              string          `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Overview          string          `gorm:"type:text" json:"overview,omitempty"`
	CandidateCriteria string          `gorm:"type:text" json:"candidate_criteria,omitempty"`
	RecoveryTime      string          `gorm:"type:varchar(100)" json:"recovery_time,omitempty"`
	Duration          string          `gorm:"type:varchar(100)" json:"duration,omitempty"`
	CostMin           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_min"`
	CostMax           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_max"`
	CategoryID        int             `gorm:"type:integer;not null;index" json:"category_id" validate:"required,gt=0"`
	BodyPartID        int             `gorm:"type:integer;not null;index" json:"body_part_id" validate:"required,gt=0"`
	IsActive          *bool           `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt         time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Procedure) TableName() string {
	return "procedures"
}

// HasValidCostRange checks that the range is non-negative and ordered
func (p *Procedure) HasValidCostRange() bool {
	return !p.CostMin.IsNegative() && p.CostMin.LessThanOrEqual(p.CostMax)
}
