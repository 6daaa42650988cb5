// Package models — Server domain modeli.
//
// Server ("topluluk"), kanallardan ve üyeliklerden oluşan isimli gruptur.
// InviteCode benzersiz ikincil anahtardır: self-service join akışı
// sunucuyu bu kod üzerinden bulur.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, bir topluluğu temsil eder.
// DB'deki "servers" tablosunun Go karşılığıdır.
type Server struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url"`
	InviteCode string    `json:"invite_code"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServerListItem, sol navigasyon için hafif sunucu özeti.
// Liste endpoint'i invite_code gibi hassas alanları taşımaz.
type ServerListItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

// ServerSidebar, guard'dan geçmiş sunucu görünümünün projeksiyonu.
//
// Kanallar türe göre üç gruba ayrılır, her grup oluşturma sırasını korur.
// Members çağıranın kendisini İÇERMEZ; rol sırasına göre artan dizilidir.
// CallerRole, UI'daki rol rozetlerini (crown/shield) gate'lemek içindir —
// redemption akışı bu alanı hiç kullanmaz.
type ServerSidebar struct {
	Server        Server              `json:"server"`
	TextChannels  []Channel           `json:"text_channels"`
	AudioChannels []Channel           `json:"audio_channels"`
	VideoChannels []Channel           `json:"video_channels"`
	Members       []MemberWithProfile `json:"members"`
	CallerRole    Role                `json:"caller_role"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Validate, CreateServerRequest kontrolü.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}
	return nil
}

// UpdateServerRequest, sunucu güncelleme isteği.
// Partial update pattern: nil field'lar değiştirilmez.
type UpdateServerRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

// Validate, UpdateServerRequest kontrolü.
func (r *UpdateServerRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("server name must be between 1 and 100 characters")
		}
	}
	return nil
}
