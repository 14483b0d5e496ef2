package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clinic and the tables below hold billing, lead and clinic-operational data.
// They are closed to every request role except service_role.
type Clinic struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Country   string    `gorm:"type:varchar(80);not null" json:"country" validate:"required"`
	City      string    `gorm:"type:varchar(80)" json:"city,omitempty"`
	Phone     string    `gorm:"type:varchar(40)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	IsActive  *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}

type ClinicDoctor struct {
	ID       int `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	ClinicID int `gorm:"type:integer;not null;index" json:"clinic_id" validate:"required,gt=0"`
	DoctorID int `gorm:"type:integer;not null;index" json:"doctor_id" validate:"required,gt=0"`
}

func (ClinicDoctor) TableName() string {
	return "clinic_doctors"
}

// Lead is an enquiry routed to a clinic
type Lead struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ClinicID    int        `gorm:"type:integer;not null;index" json:"clinic_id" validate:"required,gt=0"`
	ProcedureID int        `gorm:"type:integer;not null" json:"procedure_id" validate:"required,gt=0"`
	ContactName string     `gorm:"type:varchar(150);not null" json:"contact_name" validate:"required"`
	Email       string     `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Status      string     `gorm:"type:varchar(20);not null;default:'new'" json:"status" validate:"omitempty,oneof=new contacted converted lost"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Lead) TableName() string {
	return "leads"
}

type Invoice struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	ClinicID  int             `gorm:"type:integer;not null;index" json:"clinic_id" validate:"required,gt=0"`
	LeadID    *int            `gorm:"type:integer" json:"lead_id,omitempty"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency  string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency" validate:"omitempty,len=3"`
	Status    string          `gorm:"type:varchar(20);not null;default:'open'" json:"status" validate:"omitempty,oneof=open paid void"`
	IssuedAt  time.Time       `gorm:"type:timestamptz;not null" json:"issued_at" validate:"required"`
	CreatedAt time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type Payment struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	InvoiceID int             `gorm:"type:integer;not null;index" json:"invoice_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method    string          `gorm:"type:varchar(30);not null" json:"method" validate:"required"`
	PaidAt    time.Time       `gorm:"type:timestamptz;not null" json:"paid_at" validate:"required"`
}

func (Payment) TableName() string {
	return "payments"
}
