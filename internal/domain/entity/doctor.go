package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is the public profile of a practitioner. Certifications and
// Education hold free-text JSON exactly as entered by the clinic.
type Doctor struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Name            string          `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	Specialty       string          `gorm:"type:varchar(150);not null" json:"specialty" validate:"required"`
	ExperienceYears int             `gorm:"type:integer;not null;default:0" json:"experience_years" validate:"gte=0"`
	Qualifications  string          `gorm:"type:text" json:"qualifications,omitempty"`
	IsVerified      bool            `gorm:"type:boolean;not null;default:false" json:"is_verified"`
	VerifiedAt      *time.Time      `gorm:"type:timestamptz" json:"verified_at,omitempty"`
	Rating          decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0" json:"rating"`
	ReviewCount     int             `gorm:"type:integer;not null;default:0" json:"review_count" validate:"gte=0"`
	Certifications  string          `gorm:"type:text" json:"certifications,omitempty"`
	Education       string          `gorm:"type:text" json:"education,omitempty"`
	IsActive        *bool           `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorProcedure links a doctor to a procedure they perform
type DoctorProcedure struct {
	ID          int `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	DoctorID    int `gorm:"type:integer;not null;index" json:"doctor_id" validate:"required,gt=0"`
	ProcedureID int `gorm:"type:integer;not null;index" json:"procedure_id" validate:"required,gt=0"`
}

func (DoctorProcedure) TableName() string {
	return "doctor_procedures"
}

// Review is a patient's rating of a doctor for a procedure
type Review struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	DoctorID    int       `gorm:"type:integer;not null;index" json:"doctor_id" validate:"required,gt=0"`
	ProcedureID *int      `gorm:"type:integer;index" json:"procedure_id,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Rating      int       `gorm:"type:integer;not null" json:"rating" validate:"gte=1,lte=5"`
	Comment     string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
