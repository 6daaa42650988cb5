// Package handlers — üye JSON API handler'ları.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/services"
)

// MemberHandler, üye endpoint'lerini yönetir.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler, constructor.
func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List godoc
// GET /api/servers/{serverId}/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(r.Context(), r.PathValue("serverId"), profile.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, members)
}

// UpdateRole godoc
// PATCH /api/servers/{serverId}/members/{profileId}
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req models.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.memberService.UpdateRole(r.Context(), r.PathValue("serverId"), profile.ID, r.PathValue("profileId"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

// Kick godoc
// DELETE /api/servers/{serverId}/members/{profileId}
func (h *MemberHandler) Kick(w http.ResponseWriter, r *http.Request) {
	profile, ok := requireProfile(w, r)
	if !ok {
		return
	}

	err := h.memberService.KickMember(r.Context(), r.PathValue("serverId"), profile.ID, r.PathValue("profileId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "member kicked"})
}
