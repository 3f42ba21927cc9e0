package model

import "time"

// Reaction is unique per (message, profile, emoji); the database index enforces it.
// Emoji compares byte for byte (utf8mb4_bin), so variation selectors and
// distinct supplementary-plane emoji never collide.
type Reaction struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Emoji     string    `gorm:"type:varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;not null;uniqueIndex:unique_reaction_idx,priority:3" json:"emoji"`
	MessageID string    `gorm:"column:message_id;size:64;not null;uniqueIndex:unique_reaction_idx,priority:1" json:"messageId"`
	ProfileID string    `gorm:"column:profile_id;size:64;not null;uniqueIndex:unique_reaction_idx,priority:2;index" json:"profileId"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID;references:ID" json:"profile,omitempty"`
	CreatedAt time.Time `gorm:"precision:6;autoCreateTime" json:"createdAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}
