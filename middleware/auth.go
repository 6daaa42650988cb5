// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Her middleware func(next http.Handler) http.Handler imzasındadır ve
// zincir şeklinde bağlanır: Auth → Membership → Handler. Hata durumunda
// next çağrılmaz, request middleware'da sonlanır.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akyurt/curcuna/handlers"
	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
	"github.com/akyurt/curcuna/services"
)

// signInPath, kimliksiz sayfa isteklerinin yönlendirildiği adres.
const signInPath = "/sign-in"

// accessTokenCookie, tarayıcı navigasyonları için access token cookie adı.
// Sayfa route'larında Authorization header bulunmaz; token cookie'den okunur.
const accessTokenCookie = "access_token"

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	profileRepo repository.ProfileRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, profileRepo repository.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		profileRepo: profileRepo,
	}
}

// Require, JSON API route'ları için kimlik zorunlu kılar.
// Token yoksa veya geçersizse 401 döner.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := m.authenticate(r)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.ProfileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePage, sayfa (navigasyon) route'ları için kimlik zorunlu kılar.
// Kimliksiz istek JSON hata yerine giriş sayfasına redirect edilir —
// tarayıcı navigasyonunda 401 body'sinin kullanıcıya faydası yoktur.
func (m *AuthMiddleware) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := m.authenticate(r)
		if !ok {
			http.Redirect(w, r, signInPath, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.ProfileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate, token'ı bulur, doğrular ve profili DB'den yükler.
//
// Token arama sırası:
// 1. Authorization: Bearer <token> header'ı (API client'ları)
// 2. access_token cookie'si (tarayıcı navigasyonları)
//
// Token geçerli ama profil silinmişse kimliksiz sayılır.
func (m *AuthMiddleware) authenticate(r *http.Request) (*models.Profile, bool) {
	tokenString := ""

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return nil, false
		}
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		tokenString = cookie.Value
	}

	if tokenString == "" {
		return nil, false
	}

	claims, err := m.authService.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, false
	}

	p, err := m.profileRepo.GetByID(r.Context(), claims.ProfileID)
	if err != nil {
		return nil, false
	}

	// Hash context'te taşınmaz
	p.PasswordHash = ""

	return p, true
}
