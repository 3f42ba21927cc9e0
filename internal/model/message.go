package model

import "time"

// Message timestamps keep microseconds so rapid posts order by time, not by id.
type Message struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ChannelID string    `gorm:"column:channel_id;size:64;not null;index:idx_channel_parent_created" json:"channelId"`
	AuthorID  string    `gorm:"column:author_id;size:64;not null;index" json:"authorId"`
	Author    *Profile  `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	ParentID  *string   `gorm:"column:parent_id;size:64;index:idx_channel_parent_created;index" json:"parentId"`
	Edited    bool      `gorm:"column:edited;not null;default:false" json:"edited"`
	CreatedAt time.Time `gorm:"precision:6;autoCreateTime;index:idx_channel_parent_created" json:"createdAt"`
	UpdatedAt time.Time `gorm:"precision:6;autoUpdateTime" json:"updatedAt"`
}

func (Message) TableName() string {
	return "messages"
}

// IsReply reports whether the message lives inside a thread.
func (m Message) IsReply() bool {
	return m.ParentID != nil && *m.ParentID != ""
}
