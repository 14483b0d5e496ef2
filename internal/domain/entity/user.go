package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account. Its id is the value auth.uid() returns
// for an authenticated request.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id" validate:"required"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	AccountType  string    `gorm:"type:varchar(30);not null;default:'patient'" json:"account_type" validate:"omitempty,oneof=patient doctor admin"`
	IsActive     *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
