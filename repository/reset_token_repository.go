// Package repository — PasswordResetRepository interface.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için soyutlama.
type PasswordResetRepository interface {
	// Create, yeni bir reset token kaydeder.
	// Aynı profil için eski token'lar önce DeleteByProfile ile temizlenmelidir.
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetByTokenHash, hash ile token arar. Bulunamazsa pkg.ErrNotFound.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	// Delete, kullanılmış token'ı siler.
	Delete(ctx context.Context, id string) error

	// DeleteByProfile, profile ait tüm token'ları siler.
	DeleteByProfile(ctx context.Context, profileID string) error
}
