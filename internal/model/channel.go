package model

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Channel struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:120;not null;index" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatorID   string     `gorm:"column:creator_id;size:64;not null;index" json:"creatorId"`
	Creator     *Profile   `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Visibility  Visibility `gorm:"size:16;not null;default:public" json:"visibility"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Channel) TableName() string {
	return "channels"
}
