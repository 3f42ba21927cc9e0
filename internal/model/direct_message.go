package model

import "time"

type DirectMessage struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	SenderID    string    `gorm:"column:sender_id;size:64;not null;index:idx_dm_pair,priority:1" json:"senderId"`
	RecipientID string    `gorm:"column:recipient_id;size:64;not null;index:idx_dm_pair,priority:2;index" json:"recipientId"`
	Edited      bool      `gorm:"column:edited;not null;default:false" json:"edited"`
	CreatedAt   time.Time `gorm:"precision:6;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"precision:6;autoUpdateTime" json:"updatedAt"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
