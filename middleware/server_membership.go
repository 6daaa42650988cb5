// Package middleware — ServerMembershipMiddleware: sunucu üyelik kontrolü.
//
// AuthMiddleware'den SONRA çalışır, context'te profil zaten mevcuttur.
// URL'deki {serverId} için üyelik doğrular ve serverID'yi context'e ekler.
package middleware

import (
	"context"
	"net/http"

	"github.com/akyurt/curcuna/handlers"
	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/repository"
)

// ServerMembershipMiddleware, sunucu üyelik kontrolü middleware'ı.
type ServerMembershipMiddleware struct {
	serverRepo repository.ServerRepository
}

// NewServerMembershipMiddleware, constructor.
func NewServerMembershipMiddleware(serverRepo repository.ServerRepository) *ServerMembershipMiddleware {
	return &ServerMembershipMiddleware{serverRepo: serverRepo}
}

// Require, sunucu üyeliği zorunlu kılan middleware.
// Üye olmayan çağıran 403 alır; başarılıysa doğrulanmış serverID
// context'e eklenir.
func (m *ServerMembershipMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := r.Context().Value(handlers.ProfileContextKey).(*models.Profile)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
			return
		}

		serverID := r.PathValue("serverId")
		if serverID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "serverId is required")
			return
		}

		isMember, err := m.serverRepo.IsMember(r.Context(), serverID, profile.ID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusInternalServerError, "failed to check server membership")
			return
		}

		if !isMember {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "you are not a member of this server")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.ServerIDContextKey, serverID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
