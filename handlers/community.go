// Package handlers — sayfa (navigasyon) handler'ları.
//
// Bu handler'lar JSON değil 302 redirect üretir: tarayıcı navigasyonunu
// server-side yönlendiren ince katmandır. Kimliksiz istekleri
// middleware.RequirePage zaten /sign-in'e çevirmiştir; buraya ulaşan
// her istekte context'te profil vardır.
package handlers

import (
	"errors"
	"net/http"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/services"
)

// CommunityHandler, /community altındaki sayfa route'larını yönetir.
type CommunityHandler struct {
	serverService services.ServerService
}

// NewCommunityHandler, constructor.
func NewCommunityHandler(serverService services.ServerService) *CommunityHandler {
	return &CommunityHandler{serverService: serverService}
}

// Home godoc
// GET /community
//
// Setup navigator: çağıranın üye olduğu İLK sunucuya yönlendirir.
// Hiç üyelik yoksa redirect edilmez — sunucu kurulum cevabı döner,
// client bunun üzerine "create server" akışını gösterir.
func (h *CommunityHandler) Home(w http.ResponseWriter, r *http.Request) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return
	}

	server, err := h.serverService.FirstServer(r.Context(), profile.ID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			pkg.JSON(w, http.StatusOK, map[string]any{"setup": true})
			return
		}
		pkg.Error(w, err)
		return
	}

	http.Redirect(w, r, "/community/servers/"+server.ID, http.StatusFound)
}

// ServerView godoc
// GET /community/servers/{serverId}
//
// Membership guard + sidebar projeksiyonu tek handler'da: çağıran üye
// değilse (veya sunucu hiç yoksa) /community'ye redirect edilir — iki
// durum ayırt edilemez, sunucunun varlığı sızdırılmaz. Üyeyse sidebar
// projeksiyonu döner.
func (h *CommunityHandler) ServerView(w http.ResponseWriter, r *http.Request) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return
	}

	serverID := r.PathValue("serverId")
	sidebar, err := h.serverService.GetSidebar(r.Context(), serverID, profile.ID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			http.Redirect(w, r, "/community", http.StatusFound)
			return
		}
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, sidebar)
}
