package entity

import (
	"time"

	"github.com/google/uuid"
)

// Community is a user-authored discussion thread
type Community struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Content     string    `gorm:"type:text;not null" json:"content" validate:"required"`
	ProcedureID *int      `gorm:"type:integer;index" json:"procedure_id,omitempty"`
	CategoryID  *int      `gorm:"type:integer;index" json:"category_id,omitempty"`
	ViewCount   int       `gorm:"type:integer;not null;default:0" json:"view_count" validate:"gte=0"`
	Upvotes     int       `gorm:"type:integer;not null;default:0" json:"upvotes" validate:"gte=0"`
	Downvotes   int       `gorm:"type:integer;not null;default:0" json:"downvotes" validate:"gte=0"`
	IsActive    *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Community) TableName() string {
	return "community"
}

// CommunityReply is a reply to a thread, optionally nested under another reply
type CommunityReply struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	CommunityID   int       `gorm:"type:integer;not null;index" json:"community_id" validate:"required,gt=0"`
	ParentReplyID *int      `gorm:"type:integer;index" json:"parent_reply_id,omitempty"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Content       string    `gorm:"type:text;not null" json:"content" validate:"required"`
	Upvotes       int       `gorm:"type:integer;not null;default:0" json:"upvotes" validate:"gte=0"`
	IsActive      *bool     `gorm:"type:boolean;not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (CommunityReply) TableName() string {
	return "community_replies"
}

// CommunityVote records one user's vote on a thread
type CommunityVote struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	CommunityID int       `gorm:"type:integer;not null;index" json:"community_id" validate:"required,gt=0"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Value       int       `gorm:"type:smallint;not null" json:"value" validate:"oneof=-1 1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (CommunityVote) TableName() string {
	return "community_votes"
}

type CommunityTag struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	Name string `gorm:"type:varchar(80);uniqueIndex;not null" json:"name" validate:"required"`
}

func (CommunityTag) TableName() string {
	return "community_tags"
}

type CommunityPostTag struct {
	ID          int `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	CommunityID int `gorm:"type:integer;not null;index" json:"community_id" validate:"required,gt=0"`
	TagID       int `gorm:"type:integer;not null;index" json:"tag_id" validate:"required,gt=0"`
}

func (CommunityPostTag) TableName() string {
	return "community_post_tags"
}

// CommunityModeration is a moderator action taken on a thread
type CommunityModeration struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id" validate:"required,gt=0"`
	CommunityID int       `gorm:"type:integer;not null;index" json:"community_id" validate:"required,gt=0"`
	ModeratorID uuid.UUID `gorm:"type:uuid;not null" json:"moderator_id" validate:"required"`
	Action      string    `gorm:"type:varchar(30);not null" json:"action" validate:"required,oneof=hide restore flag delete"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (CommunityModeration) TableName() string {
	return "community_moderation"
}
