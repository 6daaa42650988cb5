// Package handlers — davet redemption sayfası ve davet kodu API'si.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/services"
)

// InviteHandler, davet akışı handler'ları.
type InviteHandler struct {
	inviteService services.InviteService
	serverService services.ServerService
}

// NewInviteHandler, constructor.
func NewInviteHandler(inviteService services.InviteService, serverService services.ServerService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		serverService: serverService,
	}
}

// Redeem godoc
// GET /community/invite/{inviteCode...}
//
// Davet linkine tıklayan kullanıcının indiği sayfa. Her koşulda bir
// redirect üretir, asla hata sayfası göstermez:
//
//	kod boş        → "/" (storage'a hiç gidilmez)
//	kod eşleşmedi  → "/"
//	yeni üyelik    → /community/servers/{id}
//	zaten üye      → /community/servers/{id} (hiçbir yazma olmaz)
//
// Wildcard pattern ({inviteCode...}) boş path kalanını da eşler — kodsuz
// /community/invite/ isteği 404 yerine buraya düşer.
func (h *InviteHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return
	}

	inviteCode := strings.Trim(r.PathValue("inviteCode"), "/")
	if inviteCode == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	server, _, err := h.inviteService.Redeem(r.Context(), inviteCode, profile.ID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		pkg.Error(w, err)
		return
	}

	http.Redirect(w, r, "/community/servers/"+server.ID, http.StatusFound)
}

// RegenerateInviteCode godoc
// PATCH /api/servers/{serverId}/invite-code
//
// Davet kodunu döndürür (rotation). Eski kod anında geçersiz olur;
// mevcut üyelikler etkilenmez. MODERATOR+ gerekir.
func (h *InviteHandler) RegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return
	}

	serverID := r.PathValue("serverId")
	server, err := h.serverService.RegenerateInviteCode(r.Context(), serverID, profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}
