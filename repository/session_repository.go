// Package repository — SessionRepository interface.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// SessionRepository, refresh token oturumları için veritabanı soyutlaması.
type SessionRepository interface {
	// Create, yeni bir oturum kaydeder.
	Create(ctx context.Context, session *models.Session) error

	// GetByRefreshToken, refresh token ile oturum arar.
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)

	// DeleteByID, oturumu siler (logout / rotate).
	DeleteByID(ctx context.Context, id string) error

	// DeleteExpired, süresi dolmuş oturumları temizler. Silinen sayıyı döner.
	DeleteExpired(ctx context.Context) (int64, error)
}
