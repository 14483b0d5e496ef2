package entity

import "time"

// Banner is a marketing carousel placement
type Banner struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title" validate:"required"`
	Placement   string    `gorm:"type:varchar(50);not null" json:"placement" validate:"required"`
	ImageURL    string    `gorm:"type:text;not null" json:"image_url" validate:"required,url"`
	LinkURL     string    `gorm:"type:text" json:"link_url,omitempty" validate:"omitempty,url"`
	SortOrder   int       `gorm:"type:integer;not null;default:0" json:"sort_order"`
	Impressions int       `gorm:"type:integer;not null;default:0" json:"impressions" validate:"gte=0"`
	Clicks      int       `gorm:"type:integer;not null;default:0" json:"clicks" validate:"gte=0,ltefield=Impressions"`
	IsActive    *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (Banner) TableName() string {
	return "banners"
}

// BannerSlide is one image in a banner's carousel
type BannerSlide struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	BannerID    int       `gorm:"type:integer;not null;index" json:"banner_id" validate:"required,gt=0"`
	Title       string    `gorm:"type:varchar(200)" json:"title,omitempty"`
	ImageURL    string    `gorm:"type:text;not null" json:"image_url" validate:"required,url"`
	LinkURL     string    `gorm:"type:text" json:"link_url,omitempty" validate:"omitempty,url"`
	SortOrder   int       `gorm:"type:integer;not null;default:0" json:"sort_order"`
	Impressions int       `gorm:"type:integer;not null;default:0" json:"impressions" validate:"gte=0"`
	Clicks      int       `gorm:"type:integer;not null;default:0" json:"clicks" validate:"gte=0,ltefield=Impressions"`
	IsActive    *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (BannerSlide) TableName() string {
	return "banner_slides"
}
