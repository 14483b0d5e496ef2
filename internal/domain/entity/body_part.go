package entity

import "time"

// BodyPart is a static reference row (face, nose, abdomen, ...)
type BodyPart struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Icon        string    `gorm:"type:varchar(255)" json:"icon,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (BodyPart) TableName() string {
	return "body_parts"
}

// Category groups procedures under a body part
type Category struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Name            string    `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	BodyPartID      int       `gorm:"type:integer;not null;index" json:"body_part_id" validate:"required,gt=0"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	PopularityScore int       `gorm:"type:integer;not null;default:0" json:"popularity_score" validate:"gte=0"`
	CreatedAt       time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
