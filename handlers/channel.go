// Package handlers — kanal JSON API handler'ları.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/services"
)

// ChannelHandler, kanal endpoint'lerini yönetir.
type ChannelHandler struct {
	channelService services.ChannelService
}

// NewChannelHandler, constructor.
func NewChannelHandler(channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// Create godoc
// POST /api/servers/{serverId}/channels
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req models.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	channel, err := h.channelService.CreateChannel(r.Context(), r.PathValue("serverId"), profile.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, channel)
}

// Delete godoc
// DELETE /api/servers/{serverId}/channels/{channelId}
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	err := h.channelService.DeleteChannel(r.Context(), r.PathValue("serverId"), r.PathValue("channelId"), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "channel deleted"})
}
