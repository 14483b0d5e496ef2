package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FaceScanAnalysis is an AI-generated cosmetic assessment of a user's photo
type FaceScanAnalysis struct {
	ID            int             `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	ImageURL      string          `gorm:"type:text" json:"image_url,omitempty" validate:"omitempty,url"`
	Summary       string          `gorm:"type:text;not null" json:"summary" validate:"required"`
	SymmetryScore decimal.Decimal `gorm:"type:numeric(5,2)" json:"symmetry_score"`
	Analysis      JSON            `gorm:"type:jsonb" json:"analysis,omitempty"`
	ModelVersion  string          `gorm:"type:varchar(50)" json:"model_version,omitempty"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (FaceScanAnalysis) TableName() string {
	return "face_scan_analyses"
}

// FaceScanRecommendation is a procedure suggested by an analysis
type FaceScanRecommendation struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	AnalysisID  int       `gorm:"type:integer;not null;index" json:"analysis_id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	ProcedureID int       `gorm:"type:integer;not null" json:"procedure_id" validate:"required,gt=0"`
	Priority    int       `gorm:"type:integer;not null;default:0" json:"priority" validate:"gte=0"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (FaceScanRecommendation) TableName() string {
	return "face_scan_recommendations"
}
