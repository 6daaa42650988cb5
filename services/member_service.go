// Package services — MemberService: üye listesi ve yönetimi.
//
// Üyelik OLUŞTURMA bu service'te değildir — yeni üyelik sadece sunucu
// oluşturma ve davet redemption'ı sırasında doğar.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
)

// MemberService, üye yönetimi interface'i.
type MemberService interface {
	// ListMembers, sunucunun üyelerini rol sırasıyla döner (çağıran dahil).
	ListMembers(ctx context.Context, serverID, callerID string) ([]models.MemberWithProfile, error)

	// UpdateRole, bir üyenin rolünü değiştirir. ADMIN gerekir; çağıran
	// kendi rolünü değiştiremez, owner'ın rolü düşürülemez.
	UpdateRole(ctx context.Context, serverID, callerID, targetID string, req *models.UpdateMemberRoleRequest) error

	// KickMember, üyeyi sunucudan atar. ADMIN gerekir; çağıran kendini
	// atamaz, owner atılamaz.
	KickMember(ctx context.Context, serverID, callerID, targetID string) error
}

type memberService struct {
	memberRepo repository.MemberRepository
	serverRepo repository.ServerRepository
}

// NewMemberService, constructor.
func NewMemberService(
	memberRepo repository.MemberRepository,
	serverRepo repository.ServerRepository,
) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		serverRepo: serverRepo,
	}
}

func (s *memberService) ListMembers(ctx context.Context, serverID, callerID string) ([]models.MemberWithProfile, error) {
	// excludeProfileID boş — tam liste. Sidebar'daki "çağıran hariç"
	// davranışı ServerService.GetSidebar'a aittir.
	members, err := s.memberRepo.ListByServer(ctx, serverID, "")
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.MemberWithProfile{}
	}
	return members, nil
}

func (s *memberService) UpdateRole(ctx context.Context, serverID, callerID, targetID string, req *models.UpdateMemberRoleRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := requireMemberRole(ctx, s.memberRepo, serverID, callerID, models.RoleAdmin); err != nil {
		return err
	}

	if callerID == targetID {
		return fmt.Errorf("%w: cannot change your own role", pkg.ErrBadRequest)
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}
	if server.OwnerID == targetID {
		return fmt.Errorf("%w: the server owner's role cannot be changed", pkg.ErrForbidden)
	}

	if _, err := s.memberRepo.GetRole(ctx, serverID, targetID); err != nil {
		return err // hedef üye değilse ErrNotFound
	}

	return s.memberRepo.UpdateRole(ctx, serverID, targetID, req.Role)
}

func (s *memberService) KickMember(ctx context.Context, serverID, callerID, targetID string) error {
	if err := requireMemberRole(ctx, s.memberRepo, serverID, callerID, models.RoleAdmin); err != nil {
		return err
	}

	if callerID == targetID {
		return fmt.Errorf("%w: cannot kick yourself", pkg.ErrBadRequest)
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return err
	}
	if server.OwnerID == targetID {
		return fmt.Errorf("%w: the server owner cannot be kicked", pkg.ErrForbidden)
	}

	if _, err := s.memberRepo.GetRole(ctx, serverID, targetID); err != nil {
		return err
	}

	return s.memberRepo.Remove(ctx, serverID, targetID)
}

// requireMemberRole, çağıranın sunucuda en az verilen role sahip olmasını
// şart koşar. Üye olmayan çağıran ErrNotFound alır — sunucunun varlığı
// sızdırılmaz. Rolü yetersizse ErrForbidden.
func requireMemberRole(ctx context.Context, memberRepo repository.MemberRepository, serverID, profileID string, minimum models.Role) error {
	role, err := memberRepo.GetRole(ctx, serverID, profileID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.ErrNotFound
		}
		return err
	}

	if role.Rank() < minimum.Rank() {
		return fmt.Errorf("%w: requires %s role or higher", pkg.ErrForbidden, minimum)
	}

	return nil
}
