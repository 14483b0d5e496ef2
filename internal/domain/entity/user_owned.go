package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference stores per-user settings; only the owner may read or change it
type UserPreference struct {
	ID                 int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id" validate:"required"`
	Language           string    `gorm:"type:varchar(10);not null;default:'en'" json:"language" validate:"omitempty,bcp47_language_tag"`
	Currency           string    `gorm:"type:varchar(3);not null;default:'USD'" json:"currency" validate:"omitempty,len=3"`
	EmailNotifications *bool     `gorm:"type:boolean;not null;default:true" json:"email_notifications"`
	PushNotifications  *bool     `gorm:"type:boolean;not null;default:true" json:"push_notifications"`
	UpdatedAt          time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

type Notification struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type" validate:"required"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title" validate:"required"`
	Body      string    `gorm:"type:text" json:"body,omitempty"`
	IsRead    bool      `gorm:"type:boolean;not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Favorite bookmarks a procedure and, optionally, the doctor who offers it
type Favorite struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	ProcedureID int       `gorm:"type:integer;not null" json:"procedure_id" validate:"required,gt=0"`
	DoctorID    *int      `gorm:"type:integer" json:"doctor_id,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Appointment struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	DoctorID    int       `gorm:"type:integer;not null;index" json:"doctor_id" validate:"required,gt=0"`
	ProcedureID int       `gorm:"type:integer;not null" json:"procedure_id" validate:"required,gt=0"`
	ScheduledAt time.Time `gorm:"type:timestamptz;not null" json:"scheduled_at" validate:"required"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Message is a direct message; UserID is the sender and owner of the row
type Message struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id" validate:"required"`
	Content     string    `gorm:"type:text;not null" json:"content" validate:"required"`
	IsRead      bool      `gorm:"type:boolean;not null;default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
