package models

import "time"

// Session, refresh token oturumunu temsil eder.
//
// Access token kısa ömürlüdür (dakikalar) ve DB'ye gitmeden doğrulanır.
// Refresh token uzun ömürlüdür ve DB'de saklanır — böylece çalınan bir
// token revoke edilebilir ve logout sadece ilgili oturumu siler.
type Session struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
