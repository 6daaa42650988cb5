// Package models — Member domain modeli ve Role enum'u.
//
// Member, Profile ↔ Server üyelik ilişkisini temsil eder (join entity).
// Invariant: aynı (profile, server) çifti için en fazla BİR üyelik olabilir —
// storage katmanında composite primary key ile garanti edilir.
package models

import (
	"errors"
	"time"
)

// errInvalidRole, UpdateMemberRoleRequest validation hatası.
var errInvalidRole = errors.New("role must be one of: guest, moderator, admin")

// Role, bir üyenin sunucudaki erişim seviyesi.
// Typed constant pattern — Go'da enum yoktur.
//
// Total order: GUEST < MODERATOR < ADMIN (bkz. Rank).
// Sıralama bir görüntüleme concern'üdür; yetki kontrolleri Rank
// karşılaştırmasıyla yapılır.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Rank, rolün total order içindeki sırasını döner.
// Bilinmeyen bir rol en düşük sıraya düşer — DB'den bozuk veri gelse bile
// sıralama crash'e değil, guest davranışına düşer.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

// Valid, rolün tanımlı değerlerden biri olup olmadığını kontrol eder.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Member, bir profilin bir sunucuya üyeliğini temsil eder.
type Member struct {
	ServerID  string    `json:"server_id"`
	ProfileID string    `json:"profile_id"`
	Role      Role      `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MemberWithProfile, üyeliği profil bilgisiyle birlikte taşır.
// Üye listesi ve sidebar projeksiyonunda kullanılan "view model".
// PasswordHash gibi hassas alanlar hiç taşınmaz — Profile embed edilmez.
type MemberWithProfile struct {
	ProfileID   string    `json:"profile_id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// UpdateMemberRoleRequest, bir üyenin rolünü değiştirme isteği.
type UpdateMemberRoleRequest struct {
	Role Role `json:"role"`
}

// Validate, UpdateMemberRoleRequest kontrolü.
func (r *UpdateMemberRoleRequest) Validate() error {
	if !r.Role.Valid() {
		return errInvalidRole
	}
	return nil
}
