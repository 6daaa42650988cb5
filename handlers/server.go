// Package handlers — sunucu JSON API handler'ları.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/services"
)

// ServerHandler, sunucu endpoint'lerini yönetir.
type ServerHandler struct {
	serverService services.ServerService
}

// NewServerHandler, constructor.
func NewServerHandler(serverService services.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// requireProfile, context'ten profili çeker. Auth middleware'ı koymadıysa
// 401 yazar ve false döner.
func requireProfile(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	profile, ok := r.Context().Value(ProfileContextKey).(*models.Profile)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "profile not found in context")
		return nil, false
	}
	return profile, true
}

// Create godoc
// POST /api/servers
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.CreateServer(r.Context(), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, server)
}

// List godoc
// GET /api/servers
// Çağıranın üye olduğu sunucular, katılma sırasıyla.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	servers, err := h.serverService.ListServers(r.Context(), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, servers)
}

// Get godoc
// GET /api/servers/{serverId}
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	server, err := h.serverService.GetServerForMember(r.Context(), r.PathValue("serverId"), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Update godoc
// PATCH /api/servers/{serverId}
func (h *ServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req models.UpdateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.UpdateServer(r.Context(), r.PathValue("serverId"), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Delete godoc
// DELETE /api/servers/{serverId}
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	if err := h.serverService.DeleteServer(r.Context(), r.PathValue("serverId"), profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "server deleted"})
}

// Leave godoc
// POST /api/servers/{serverId}/leave
func (h *ServerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	if err := h.serverService.LeaveServer(r.Context(), r.PathValue("serverId"), profile.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left server"})
}
