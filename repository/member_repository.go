// Package repository — MemberRepository interface.
//
// Üyelik OLUŞTURMA burada değildir: yeni üyelik sadece iki yerden doğar —
// sunucu oluşturma (ServerRepository.Create) ve davet redemption'ı
// (ServerRepository.RedeemInvite). Bu interface mevcut üyelikleri okur
// ve yönetir.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// MemberRepository, üyelik okuma/yönetim işlemleri için interface.
type MemberRepository interface {
	// ListByServer, sunucunun üyelerini profil bilgisiyle döner.
	// excludeProfileID boş değilse o profil listeden çıkarılır
	// (sidebar çağıranın kendisini listelemez).
	// Sıralama: rol sırası artan (guest < moderator < admin), sonra joined_at.
	ListByServer(ctx context.Context, serverID, excludeProfileID string) ([]models.MemberWithProfile, error)

	// GetRole, çağıranın sunucudaki rolünü döner. Üye değilse pkg.ErrNotFound.
	GetRole(ctx context.Context, serverID, profileID string) (models.Role, error)

	// UpdateRole, bir üyenin rolünü değiştirir.
	UpdateRole(ctx context.Context, serverID, profileID string, role models.Role) error

	// Remove, üyeliği siler (kick veya leave).
	Remove(ctx context.Context, serverID, profileID string) error
}
