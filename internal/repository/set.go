package repository

import "gorm.io/gorm"

// Set bundles one implementation of every repository.
type Set struct {
	Profiles       ProfileRepository
	Channels       ChannelRepository
	Messages       MessageRepository
	Reactions      ReactionRepository
	DirectMessages DirectMessageRepository
}

func NewGormSet(db *gorm.DB) Set {
	return Set{
		Profiles:       NewProfileRepository(db),
		Channels:       NewChannelRepository(db),
		Messages:       NewMessageRepository(db),
		Reactions:      NewReactionRepository(db),
		DirectMessages: NewDirectMessageRepository(db),
	}
}

// Set exposes the store through the repository interfaces.
func (m *MemoryStore) Set() Set {
	return Set{
		Profiles:       m.Profiles(),
		Channels:       m.Channels(),
		Messages:       m.Messages(),
		Reactions:      m.Reactions(),
		DirectMessages: m.DirectMessages(),
	}
}

// SetDB points every gorm repository at db, e.g. after a reconnect.
func (s Set) SetDB(db *gorm.DB) {
	s.Profiles.SetDB(db)
	s.Channels.SetDB(db)
	s.Messages.SetDB(db)
	s.Reactions.SetDB(db)
	s.DirectMessages.SetDB(db)
}
