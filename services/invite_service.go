// Package services — InviteService: davet kodu redemption akışı.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
)

// InviteService, davet kodu kullanma iş mantığı interface'i.
type InviteService interface {
	// Redeem, davet kodunu çağıran profil adına kullanır.
	//
	// Dönüş:
	//   (server, false, nil) → yeni GUEST üyeliği oluşturuldu
	//   (server, true, nil)  → çağıran zaten üyeydi, hiçbir şey değişmedi
	//   (nil, false, pkg.ErrNotFound) → kodu eşleşen sunucu yok
	//
	// Operasyon idempotent'tir: aynı kod aynı profil tarafından kaç kez
	// kullanılırsa kullanılsın tek üyelik kaydı oluşur ve mevcut üyeliğin
	// rolü/katılma zamanı değişmez.
	Redeem(ctx context.Context, inviteCode, profileID string) (*models.Server, bool, error)
}

type inviteService struct {
	serverRepo repository.ServerRepository
}

// NewInviteService, constructor.
func NewInviteService(serverRepo repository.ServerRepository) InviteService {
	return &inviteService{serverRepo: serverRepo}
}

// Redeem, kodu normalize eder ve atomik redemption'ı repository'ye devreder.
//
// Kod bulma + üyelik ekleme ayrı adımlar DEĞİLDİR — ikisi arasında kod
// rotate edilirse yarım kalmış durum oluşmasın diye tek transaction'da
// çalışır (ServerRepository.RedeemInvite).
func (s *inviteService) Redeem(ctx context.Context, inviteCode, profileID string) (*models.Server, bool, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, false, fmt.Errorf("%w: invite code is required", pkg.ErrNotFound)
	}

	return s.serverRepo.RedeemInvite(ctx, inviteCode, profileID)
}
