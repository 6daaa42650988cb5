// Package services — ChannelService: kanal yönetimi iş mantığı.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
	"github.com/google/uuid"
)

// ChannelService, kanal yönetimi interface'i.
type ChannelService interface {
	// CreateChannel, sunucuya yeni kanal ekler. MODERATOR+ gerekir.
	// "general" adı rezervedir.
	CreateChannel(ctx context.Context, serverID, profileID string, req *models.CreateChannelRequest) (*models.Channel, error)

	// DeleteChannel, kanalı siler. MODERATOR+ gerekir.
	// Default "general" kanalı silinemez.
	DeleteChannel(ctx context.Context, serverID, channelID, profileID string) error
}

type channelService struct {
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
}

// NewChannelService, constructor.
func NewChannelService(
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
	}
}

func (s *channelService) CreateChannel(ctx context.Context, serverID, profileID string, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := requireMemberRole(ctx, s.memberRepo, serverID, profileID, models.RoleModerator); err != nil {
		return nil, err
	}

	channel := &models.Channel{
		ID:       uuid.NewString(),
		ServerID: serverID,
		Name:     req.Name,
		Type:     models.ChannelType(req.Type),
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	return channel, nil
}

func (s *channelService) DeleteChannel(ctx context.Context, serverID, channelID, profileID string) error {
	if err := requireMemberRole(ctx, s.memberRepo, serverID, profileID, models.RoleModerator); err != nil {
		return err
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}

	// URL'deki serverID ile kanalın gerçek sunucusu eşleşmeli —
	// başka sunucunun kanalı bu endpoint üzerinden silinemez.
	if channel.ServerID != serverID {
		return pkg.ErrNotFound
	}

	if strings.EqualFold(channel.Name, models.DefaultChannelName) {
		return fmt.Errorf("%w: the '%s' channel cannot be deleted", pkg.ErrForbidden, models.DefaultChannelName)
	}

	return s.channelRepo.Delete(ctx, channelID)
}
