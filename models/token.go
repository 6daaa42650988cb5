package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token payload'ı.
//
// models paketinde tanımlıdır çünkü birden fazla katman (services,
// middleware) tarafından kullanılır — circular dependency önlenir.
type TokenClaims struct {
	ProfileID string `json:"profile_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}
