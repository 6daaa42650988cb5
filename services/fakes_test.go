package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
)

// memStore, service testlerinde kullanılan in-memory veri deposu.
// SQLite repo'larının davranış sözleşmesini taklit eder: ErrNotFound,
// idempotent redemption, rol sıralı üye listesi.
type memStore struct {
	mu       sync.Mutex
	servers  map[string]*models.Server
	members  map[string]map[string]*models.Member // serverID → profileID
	channels []*models.Channel
	profiles map[string]*models.Profile
	joinSeq  int
}

func newMemStore() *memStore {
	return &memStore{
		servers:  make(map[string]*models.Server),
		members:  make(map[string]map[string]*models.Member),
		profiles: make(map[string]*models.Profile),
	}
}

func (s *memStore) addProfile(id, username string) *models.Profile {
	p := &models.Profile{ID: id, Username: username}
	s.profiles[id] = p
	return p
}

// addMember, üyelik ekler (test setup'ı — repo sözleşmesinin dışından).
func (s *memStore) addMember(serverID, profileID string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertMemberLocked(serverID, profileID, role)
}

func (s *memStore) insertMemberLocked(serverID, profileID string, role models.Role) bool {
	if s.members[serverID] == nil {
		s.members[serverID] = make(map[string]*models.Member)
	}
	if _, exists := s.members[serverID][profileID]; exists {
		return false
	}
	s.joinSeq++
	s.members[serverID][profileID] = &models.Member{
		ServerID:  serverID,
		ProfileID: profileID,
		Role:      role,
		JoinedAt:  time.Unix(int64(s.joinSeq), 0),
	}
	return true
}

// ─── fakeServerRepo ───

type fakeServerRepo struct {
	store *memStore
}

func (r *fakeServerRepo) Create(ctx context.Context, server *models.Server, firstChannel *models.Channel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	server.CreatedAt = time.Now()
	r.store.servers[server.ID] = server
	r.store.insertMemberLocked(server.ID, server.OwnerID, models.RoleAdmin)

	firstChannel.ServerID = server.ID
	firstChannel.CreatedAt = time.Now()
	r.store.channels = append(r.store.channels, firstChannel)
	return nil
}

func (r *fakeServerRepo) GetByID(ctx context.Context, serverID string) (*models.Server, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	server, ok := r.store.servers[serverID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *server
	return &cp, nil
}

func (r *fakeServerRepo) GetByIDForMember(ctx context.Context, serverID, profileID string) (*models.Server, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	server, ok := r.store.servers[serverID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	if _, member := r.store.members[serverID][profileID]; !member {
		return nil, pkg.ErrNotFound
	}
	cp := *server
	return &cp, nil
}

func (r *fakeServerRepo) FirstForProfile(ctx context.Context, profileID string) (*models.Server, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var first *models.Member
	for _, members := range r.store.members {
		m, ok := members[profileID]
		if !ok {
			continue
		}
		if first == nil || m.JoinedAt.Before(first.JoinedAt) {
			first = m
		}
	}
	if first == nil {
		return nil, pkg.ErrNotFound
	}
	cp := *r.store.servers[first.ServerID]
	return &cp, nil
}

func (r *fakeServerRepo) ListForProfile(ctx context.Context, profileID string) ([]models.ServerListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var items []models.ServerListItem
	for serverID, members := range r.store.members {
		if _, ok := members[profileID]; ok {
			s := r.store.servers[serverID]
			items = append(items, models.ServerListItem{ID: s.ID, Name: s.Name, ImageURL: s.ImageURL})
		}
	}
	return items, nil
}

func (r *fakeServerRepo) Update(ctx context.Context, server *models.Server) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.servers[server.ID]
	if !ok {
		return pkg.ErrNotFound
	}
	existing.Name = server.Name
	existing.ImageURL = server.ImageURL
	return nil
}

func (r *fakeServerRepo) UpdateInviteCode(ctx context.Context, serverID, inviteCode string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	server, ok := r.store.servers[serverID]
	if !ok {
		return pkg.ErrNotFound
	}
	server.InviteCode = inviteCode
	return nil
}

func (r *fakeServerRepo) Delete(ctx context.Context, serverID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.servers[serverID]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.store.servers, serverID)
	delete(r.store.members, serverID)

	var kept []*models.Channel
	for _, ch := range r.store.channels {
		if ch.ServerID != serverID {
			kept = append(kept, ch)
		}
	}
	r.store.channels = kept
	return nil
}

func (r *fakeServerRepo) RedeemInvite(ctx context.Context, inviteCode, profileID string) (*models.Server, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, server := range r.store.servers {
		if server.InviteCode != inviteCode {
			continue
		}
		inserted := r.store.insertMemberLocked(server.ID, profileID, models.RoleGuest)
		cp := *server
		return &cp, !inserted, nil
	}
	return nil, false, fmt.Errorf("%w: no server for invite code", pkg.ErrNotFound)
}

func (r *fakeServerRepo) IsMember(ctx context.Context, serverID, profileID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.members[serverID][profileID]
	return ok, nil
}

// ─── fakeMemberRepo ───

type fakeMemberRepo struct {
	store *memStore
}

func (r *fakeMemberRepo) ListByServer(ctx context.Context, serverID, excludeProfileID string) ([]models.MemberWithProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var members []models.MemberWithProfile
	for profileID, m := range r.store.members[serverID] {
		if excludeProfileID != "" && profileID == excludeProfileID {
			continue
		}
		username := profileID
		if p, ok := r.store.profiles[profileID]; ok {
			username = p.Username
		}
		members = append(members, models.MemberWithProfile{
			ProfileID: profileID,
			Username:  username,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		})
	}

	// Rol sırası artan, sonra katılma sırası — SQLite repo ile aynı sözleşme
	for i := 1; i < len(members); i++ {
		for j := i; j > 0; j-- {
			a, b := members[j-1], members[j]
			if a.Role.Rank() > b.Role.Rank() ||
				(a.Role.Rank() == b.Role.Rank() && a.JoinedAt.After(b.JoinedAt)) {
				members[j-1], members[j] = b, a
			}
		}
	}
	return members, nil
}

func (r *fakeMemberRepo) GetRole(ctx context.Context, serverID, profileID string) (models.Role, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.members[serverID][profileID]
	if !ok {
		return "", pkg.ErrNotFound
	}
	return m.Role, nil
}

func (r *fakeMemberRepo) UpdateRole(ctx context.Context, serverID, profileID string, role models.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.members[serverID][profileID]
	if !ok {
		return pkg.ErrNotFound
	}
	m.Role = role
	return nil
}

func (r *fakeMemberRepo) Remove(ctx context.Context, serverID, profileID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.members[serverID][profileID]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.store.members[serverID], profileID)
	return nil
}

// ─── fakeChannelRepo ───

type fakeChannelRepo struct {
	store *memStore
}

func (r *fakeChannelRepo) ListByServer(ctx context.Context, serverID string) ([]models.Channel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var channels []models.Channel
	for _, ch := range r.store.channels {
		if ch.ServerID == serverID {
			channels = append(channels, *ch)
		}
	}
	return channels, nil
}

func (r *fakeChannelRepo) GetByID(ctx context.Context, channelID string) (*models.Channel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, ch := range r.store.channels {
		if ch.ID == channelID {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	channel.CreatedAt = time.Now()
	r.store.channels = append(r.store.channels, channel)
	return nil
}

func (r *fakeChannelRepo) Delete(ctx context.Context, channelID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, ch := range r.store.channels {
		if ch.ID == channelID {
			r.store.channels = append(r.store.channels[:i], r.store.channels[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}
