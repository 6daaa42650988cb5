// Package repository — ChannelRepository interface.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	// ListByServer, sunucunun kanallarını OLUŞTURMA SIRASIYLA döner.
	// Sidebar projeksiyonu bu sıraya güvenir.
	ListByServer(ctx context.Context, serverID string) ([]models.Channel, error)

	// GetByID, id ile kanal arar. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, channelID string) (*models.Channel, error)

	// Create, yeni bir kanal oluşturur.
	Create(ctx context.Context, channel *models.Channel) error

	// Delete, kanalı siler.
	Delete(ctx context.Context, channelID string) error
}
