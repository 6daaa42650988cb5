// Package services — ServerService: sunucu yaşam döngüsü ve sidebar projeksiyonu.
//
// Sunucu oluşturma, güncelleme, silme, davet kodu rotation'ı, ayrılma ve
// guard'dan geçmiş sunucu görünümünün (sidebar) derlenmesi.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
	"github.com/google/uuid"
)

// ServerService, sunucu yönetimi iş mantığı interface'i.
type ServerService interface {
	// CreateServer, yeni bir sunucu oluşturur.
	// Sahip ADMIN üyelik alır, "general" text kanalı ve taze davet kodu
	// ile birlikte tek atomik işlemde yazılır.
	CreateServer(ctx context.Context, ownerID string, req *models.CreateServerRequest) (*models.Server, error)

	// GetServerForMember, sunucuyu SADECE çağıran üyeyse döner.
	// Üye değilse veya sunucu yoksa pkg.ErrNotFound.
	GetServerForMember(ctx context.Context, serverID, profileID string) (*models.Server, error)

	// GetSidebar, guard'dan geçmiş sunucu görünümünü derler:
	// türe göre gruplanmış kanallar + çağıran hariç rol sıralı üyeler
	// + çağıranın kendi rolü.
	GetSidebar(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error)

	// ListServers, profilin üye olduğu sunucuları katılma sırasıyla döner.
	ListServers(ctx context.Context, profileID string) ([]models.ServerListItem, error)

	// FirstServer, profilin üye olduğu ilk sunucuyu döner.
	// Hiç üyelik yoksa pkg.ErrNotFound.
	FirstServer(ctx context.Context, profileID string) (*models.Server, error)

	// UpdateServer, sunucu adını/görselini günceller. MODERATOR+ gerekir.
	UpdateServer(ctx context.Context, serverID, profileID string, req *models.UpdateServerRequest) (*models.Server, error)

	// RegenerateInviteCode, davet kodunu değiştirir. MODERATOR+ gerekir.
	// Eski kod anında geçersiz olur; mevcut üyelikler etkilenmez.
	RegenerateInviteCode(ctx context.Context, serverID, profileID string) (*models.Server, error)

	// DeleteServer, sunucuyu siler. Sadece owner yapabilir.
	DeleteServer(ctx context.Context, serverID, profileID string) error

	// LeaveServer, sunucudan ayrılır. Owner ayrılamaz, önce devretmeli
	// veya silmelidir.
	LeaveServer(ctx context.Context, serverID, profileID string) error
}

type serverService struct {
	serverRepo  repository.ServerRepository
	memberRepo  repository.MemberRepository
	channelRepo repository.ChannelRepository
}

// NewServerService, constructor.
func NewServerService(
	serverRepo repository.ServerRepository,
	memberRepo repository.MemberRepository,
	channelRepo repository.ChannelRepository,
) ServerService {
	return &serverService{
		serverRepo:  serverRepo,
		memberRepo:  memberRepo,
		channelRepo: channelRepo,
	}
}

// CreateServer, yeni bir sunucu oluşturur.
//
// Akış:
// 1. Validate
// 2. Taze davet kodu üret
// 3. Repository.Create: server + owner admin üyeliği + "general" kanalı (atomik)
func (s *serverService) CreateServer(ctx context.Context, ownerID string, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	inviteCode, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if req.ImageURL != "" {
		imageURL = &req.ImageURL
	}

	server := &models.Server{
		ID:         uuid.NewString(),
		Name:       req.Name,
		ImageURL:   imageURL,
		InviteCode: inviteCode,
		OwnerID:    ownerID,
	}

	firstChannel := &models.Channel{
		ID:       uuid.NewString(),
		ServerID: server.ID,
		Name:     models.DefaultChannelName,
		Type:     models.ChannelTypeText,
	}

	if err := s.serverRepo.Create(ctx, server, firstChannel); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *serverService) GetServerForMember(ctx context.Context, serverID, profileID string) (*models.Server, error) {
	return s.serverRepo.GetByIDForMember(ctx, serverID, profileID)
}

// GetSidebar, sunucu görünümünü derler.
//
// Membership guard GetByIDForMember üzerinden çalışır: üye olmayan çağıran
// sunucunun varlığını bile öğrenemez. Kanallar tek sorguda oluşturma
// sırasıyla gelir ve türe göre gruplanır — grup içi sıra korunur.
// Üye listesi çağıranı içermez ve rol sırasına göre artan dizilidir.
func (s *serverService) GetSidebar(ctx context.Context, serverID, profileID string) (*models.ServerSidebar, error) {
	server, err := s.serverRepo.GetByIDForMember(ctx, serverID, profileID)
	if err != nil {
		return nil, err
	}

	callerRole, err := s.memberRepo.GetRole(ctx, serverID, profileID)
	if err != nil {
		return nil, err
	}

	channels, err := s.channelRepo.ListByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByServer(ctx, serverID, profileID)
	if err != nil {
		return nil, err
	}

	sidebar := &models.ServerSidebar{
		Server:        *server,
		TextChannels:  []models.Channel{},
		AudioChannels: []models.Channel{},
		VideoChannels: []models.Channel{},
		Members:       members,
		CallerRole:    callerRole,
	}
	if sidebar.Members == nil {
		sidebar.Members = []models.MemberWithProfile{}
	}

	for _, ch := range channels {
		switch ch.Type {
		case models.ChannelTypeAudio:
			sidebar.AudioChannels = append(sidebar.AudioChannels, ch)
		case models.ChannelTypeVideo:
			sidebar.VideoChannels = append(sidebar.VideoChannels, ch)
		default:
			sidebar.TextChannels = append(sidebar.TextChannels, ch)
		}
	}

	return sidebar, nil
}

func (s *serverService) ListServers(ctx context.Context, profileID string) ([]models.ServerListItem, error) {
	servers, err := s.serverRepo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if servers == nil {
		servers = []models.ServerListItem{}
	}
	return servers, nil
}

func (s *serverService) FirstServer(ctx context.Context, profileID string) (*models.Server, error) {
	return s.serverRepo.FirstForProfile(ctx, profileID)
}

// UpdateServer, sunucu adını/görselini günceller.
func (s *serverService) UpdateServer(ctx context.Context, serverID, profileID string, req *models.UpdateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := requireMemberRole(ctx, s.memberRepo, serverID, profileID, models.RoleModerator); err != nil {
		return nil, err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		server.Name = *req.Name
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			server.ImageURL = nil
		} else {
			server.ImageURL = req.ImageURL
		}
	}

	if err := s.serverRepo.Update(ctx, server); err != nil {
		return nil, err
	}

	return server, nil
}

// RegenerateInviteCode, davet kodunu döndürür (rotation).
func (s *serverService) RegenerateInviteCode(ctx context.Context, serverID, profileID string) (*models.Server, error) {
	if err := requireMemberRole(ctx, s.memberRepo, serverID, profileID, models.RoleModerator); err != nil {
		return nil, err
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}

	newCode, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	if err := s.serverRepo.UpdateInviteCode(ctx, serverID, newCode); err != nil {
		return nil, err
	}

	server.InviteCode = newCode
	return server, nil
}

// DeleteServer, sunucuyu siler.
func (s *serverService) DeleteServer(ctx context.Context, serverID, profileID string) error {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}

	if server.OwnerID != profileID {
		return fmt.Errorf("%w: only the server owner can delete the server", pkg.ErrForbidden)
	}

	return s.serverRepo.Delete(ctx, serverID)
}

// LeaveServer, sunucudan ayrılır.
func (s *serverService) LeaveServer(ctx context.Context, serverID, profileID string) error {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}

	if server.OwnerID == profileID {
		return fmt.Errorf("%w: the server owner cannot leave the server", pkg.ErrForbidden)
	}

	if _, err := s.memberRepo.GetRole(ctx, serverID, profileID); err != nil {
		return err // üye değilse ErrNotFound
	}

	return s.memberRepo.Remove(ctx, serverID, profileID)
}

// generateInviteCode, 16 hex karakterlik davet kodu üretir.
// URL-safe'tir ve tahmin edilemez; benzersizlik DB'deki unique index ile
// garanti edilir.
func generateInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
