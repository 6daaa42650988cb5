// Package repository, veri erişim katmanının interface tanımlarını barındırır.
//
// Her entity için bir interface + bir SQLite implementasyonu (sqlite_*.go).
// Service katmanı interface'lere bağımlıdır — test'lerde in-memory fake'lerle
// değiştirilebilir.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// ProfileRepository, kimlik kayıtları için veritabanı soyutlaması.
type ProfileRepository interface {
	// Create, yeni bir profil oluşturur.
	// Username/email çakışmasında pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByID, id ile profil arar. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByUsername, kullanıcı adı ile profil arar.
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)

	// GetByEmail, email ile profil arar — şifre sıfırlama akışı kullanır.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	// UpdatePassword, şifre hash'ini günceller.
	UpdatePassword(ctx context.Context, profileID, passwordHash string) error
}
