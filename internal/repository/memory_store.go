package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shinyyama/teamchat-backend/internal/model"
	"gorm.io/gorm"
)

// MemoryStore keeps every table in-process. It backs STORAGE_DRIVER=memory
// and the package tests; missing rows yield gorm.ErrRecordNotFound so callers
// cannot tell it apart from the MySQL repositories.
type MemoryStore struct {
	mu        sync.RWMutex
	profiles  map[string]model.Profile
	channels  map[string]model.Channel
	messages  map[string]model.Message
	reactions map[string]model.Reaction
	dms       map[string]model.DirectMessage
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]model.Profile),
		channels:  make(map[string]model.Channel),
		messages:  make(map[string]model.Message),
		reactions: make(map[string]model.Reaction),
		dms:       make(map[string]model.DirectMessage),
	}
}

func (m *MemoryStore) Profiles() ProfileRepository             { return memProfiles{m} }
func (m *MemoryStore) Channels() ChannelRepository             { return memChannels{m} }
func (m *MemoryStore) Messages() MessageRepository             { return memMessages{m} }
func (m *MemoryStore) Reactions() ReactionRepository           { return memReactions{m} }
func (m *MemoryStore) DirectMessages() DirectMessageRepository { return memDirectMessages{m} }

// joinProfile must be called with mu held.
func (m *MemoryStore) joinProfile(id string) *model.Profile {
	p, ok := m.profiles[id]
	if !ok {
		return nil
	}
	return &p
}

func (m *MemoryStore) withAuthor(msg model.Message) model.Message {
	msg.Author = m.joinProfile(msg.AuthorID)
	return msg
}

func stamp(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil && updatedAt.IsZero() {
		*updatedAt = now
	}
}

// profiles

type memProfiles struct{ m *MemoryStore }

func (r memProfiles) SetDB(*gorm.DB) {}

func (r memProfiles) List(ctx context.Context) ([]model.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.Profile, 0, len(r.m.profiles))
	for _, p := range r.m.profiles {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r memProfiles) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memProfiles) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, p := range r.m.profiles {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memProfiles) Save(ctx context.Context, p *model.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, existing := range r.m.profiles {
		if existing.Email == p.Email && id != p.ID {
			return ErrDuplicate
		}
	}
	stamp(&p.CreatedAt, &p.UpdatedAt)
	r.m.profiles[p.ID] = *p
	return nil
}

func (r memProfiles) Count(ctx context.Context) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return int64(len(r.m.profiles)), nil
}

// channels

type memChannels struct{ m *MemoryStore }

func (r memChannels) SetDB(*gorm.DB) {}

func (r memChannels) Create(ctx context.Context, ch *model.Channel) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, exists := r.m.channels[ch.ID]; exists {
		return ErrDuplicate
	}
	stamp(&ch.CreatedAt, &ch.UpdatedAt)
	stored := *ch
	stored.Creator = nil
	r.m.channels[ch.ID] = stored
	return nil
}

func (r memChannels) FindByID(ctx context.Context, id string) (*model.Channel, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	ch, ok := r.m.channels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ch, nil
}

func (r memChannels) List(ctx context.Context, filter ChannelFilter) ([]model.Channel, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	// Same trimming as the gorm repository.
	term := strings.TrimSpace(filter.Search)
	if !filter.CaseSensitive {
		term = strings.ToLower(term)
	}
	res := make([]model.Channel, 0, len(r.m.channels))
	for _, ch := range r.m.channels {
		name := ch.Name
		if !filter.CaseSensitive {
			name = strings.ToLower(name)
		}
		if term != "" && !strings.Contains(name, term) {
			continue
		}
		res = append(res, ch)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// messages

type memMessages struct{ m *MemoryStore }

func (r memMessages) SetDB(*gorm.DB) {}

func (r memMessages) Create(ctx context.Context, msg *model.Message) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, exists := r.m.messages[msg.ID]; exists {
		return ErrDuplicate
	}
	stamp(&msg.CreatedAt, &msg.UpdatedAt)
	stored := *msg
	stored.Author = nil
	r.m.messages[msg.ID] = stored
	return nil
}

func (r memMessages) FindByID(ctx context.Context, id string) (*model.Message, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	msg, ok := r.m.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	msg = r.m.withAuthor(msg)
	return &msg, nil
}

func (r memMessages) ListTopLevel(ctx context.Context, channelID string, limit int) ([]model.Message, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.Message, 0)
	for _, msg := range r.m.messages {
		if msg.ChannelID == channelID && !msg.IsReply() {
			res = append(res, r.m.withAuthor(msg))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r memMessages) ListReplies(ctx context.Context, parentID string) ([]model.Message, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.Message, 0)
	for _, msg := range r.m.messages {
		if msg.ParentID != nil && *msg.ParentID == parentID {
			res = append(res, r.m.withAuthor(msg))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r memMessages) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	msg, ok := r.m.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.Content = content
	msg.Edited = true
	msg.UpdatedAt = updatedAt
	r.m.messages[id] = msg
	return nil
}

func (r memMessages) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.messages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	removed := map[string]struct{}{id: {}}
	for mid, msg := range r.m.messages {
		if msg.ParentID != nil && *msg.ParentID == id {
			removed[mid] = struct{}{}
		}
	}
	for rid, rc := range r.m.reactions {
		if _, ok := removed[rc.MessageID]; ok {
			delete(r.m.reactions, rid)
		}
	}
	for mid := range removed {
		delete(r.m.messages, mid)
	}
	return nil
}

// reactions

type memReactions struct{ m *MemoryStore }

func (r memReactions) SetDB(*gorm.DB) {}

func (r memReactions) Create(ctx context.Context, rc *model.Reaction) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.reactions {
		if existing.MessageID == rc.MessageID && existing.ProfileID == rc.ProfileID && existing.Emoji == rc.Emoji {
			return ErrDuplicate
		}
	}
	if _, exists := r.m.reactions[rc.ID]; exists {
		return ErrDuplicate
	}
	stamp(&rc.CreatedAt, nil)
	stored := *rc
	stored.Profile = nil
	r.m.reactions[rc.ID] = stored
	return nil
}

func (r memReactions) FindByTriple(ctx context.Context, messageID, profileID, emoji string) (*model.Reaction, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, rc := range r.m.reactions {
		if rc.MessageID == messageID && rc.ProfileID == profileID && rc.Emoji == emoji {
			rc := rc
			return &rc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memReactions) Delete(ctx context.Context, messageID, profileID, emoji string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, rc := range r.m.reactions {
		if rc.MessageID == messageID && rc.ProfileID == profileID && rc.Emoji == emoji {
			delete(r.m.reactions, id)
		}
	}
	return nil
}

func (r memReactions) ListByMessage(ctx context.Context, messageID string) ([]model.Reaction, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.Reaction, 0)
	for _, rc := range r.m.reactions {
		if rc.MessageID == messageID {
			rc.Profile = r.m.joinProfile(rc.ProfileID)
			res = append(res, rc)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// direct messages

type memDirectMessages struct{ m *MemoryStore }

func (r memDirectMessages) SetDB(*gorm.DB) {}

func (r memDirectMessages) Create(ctx context.Context, dm *model.DirectMessage) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, exists := r.m.dms[dm.ID]; exists {
		return ErrDuplicate
	}
	stamp(&dm.CreatedAt, &dm.UpdatedAt)
	r.m.dms[dm.ID] = *dm
	return nil
}

func (r memDirectMessages) FindByID(ctx context.Context, id string) (*model.DirectMessage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	dm, ok := r.m.dms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &dm, nil
}

func (r memDirectMessages) ListConversation(ctx context.Context, profileA, profileB string, limit int) ([]model.DirectMessage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.DirectMessage, 0)
	for _, dm := range r.m.dms {
		if (dm.SenderID == profileA && dm.RecipientID == profileB) ||
			(dm.SenderID == profileB && dm.RecipientID == profileA) {
			res = append(res, dm)
		}
	}
	sortNewestFirst(res)
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r memDirectMessages) ListByParticipant(ctx context.Context, profileID string) ([]model.DirectMessage, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	res := make([]model.DirectMessage, 0)
	for _, dm := range r.m.dms {
		if dm.SenderID == profileID || dm.RecipientID == profileID {
			res = append(res, dm)
		}
	}
	sortNewestFirst(res)
	return res, nil
}

func (r memDirectMessages) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	dm, ok := r.m.dms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	dm.Content = content
	dm.Edited = true
	dm.UpdatedAt = updatedAt
	r.m.dms[id] = dm
	return nil
}

func (r memDirectMessages) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.dms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.dms, id)
	return nil
}

func sortNewestFirst(list []model.DirectMessage) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
