// Package repository — ServerRepository interface.
//
// Sunucu (topluluk) verisi ve üyelik mutasyonları için soyutlama.
// RedeemInvite bu katmanın tek "akıllı" operasyonudur: davet kodu ile
// sunucu bulma + koşullu üyelik ekleme TEK atomik birim olarak çalışır.
package repository

import (
	"context"

	"github.com/akyurt/curcuna/models"
)

// ServerRepository, sunucu veritabanı işlemleri için interface.
type ServerRepository interface {
	// Create, sunucuyu, sahibin admin üyeliğini ve verilen ilk kanalı
	// tek transaction'da oluşturur.
	Create(ctx context.Context, server *models.Server, firstChannel *models.Channel) error

	// GetByID, id ile sunucu arar. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, serverID string) (*models.Server, error)

	// GetByIDForMember, sunucuyu SADECE çağıran üyeyse döner.
	// Üye değilse veya sunucu yoksa pkg.ErrNotFound — iki durum caller
	// açısından aynıdır (guard redirect'i).
	GetByIDForMember(ctx context.Context, serverID, profileID string) (*models.Server, error)

	// FirstForProfile, profilin üye olduğu ilk sunucuyu döner
	// (katılma sırasına göre). Hiç üyelik yoksa pkg.ErrNotFound.
	FirstForProfile(ctx context.Context, profileID string) (*models.Server, error)

	// ListForProfile, profilin üye olduğu sunucuları katılma sırasıyla döner.
	ListForProfile(ctx context.Context, profileID string) ([]models.ServerListItem, error)

	// Update, sunucu adını/görselini günceller.
	Update(ctx context.Context, server *models.Server) error

	// UpdateInviteCode, davet kodunu değiştirir (rotation).
	UpdateInviteCode(ctx context.Context, serverID, inviteCode string) error

	// Delete, sunucuyu siler — üyelikler ve kanallar cascade ile gider.
	Delete(ctx context.Context, serverID string) error

	// RedeemInvite, davet kodunu tek atomik operasyonla kullanır:
	// kodu eşleşen sunucuyu bulur ve çağıran için GUEST üyeliği ekler.
	//
	// Dönüş:
	//   (server, false, nil)  → yeni üyelik oluşturuldu
	//   (server, true, nil)   → çağıran zaten üyeydi, hiçbir şey yazılmadı
	//   (nil, false, ErrNotFound) → kodu eşleşen sunucu yok
	//
	// Üyelik insert'i ON CONFLICT DO NOTHING ile yapılır; (profile, server)
	// benzersizliği composite primary key'e dayanır. Aynı kodu aynı anda
	// kullanan iki farklı çağıran bağımsız başarılı olur; aynı çağıranın
	// yarışan iki isteğinden en fazla biri insert eder.
	RedeemInvite(ctx context.Context, inviteCode, profileID string) (*models.Server, bool, error)

	// IsMember, üyelik kontrolü.
	IsMember(ctx context.Context, serverID, profileID string) (bool, error)
}
