// Package main — HTTP route registration.
//
// initRoutes, sayfa (redirect) route'larını ve JSON API endpoint'lerini
// mux'a bağlar. Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT doğrulaması, başarısızlıkta 401
//   - authPage: JWT doğrulaması, başarısızlıkta /sign-in redirect'i
//   - authServer: auth + sunucu üyelik kontrolü
package main

import (
	"net/http"

	"github.com/akyurt/curcuna/middleware"
	"github.com/akyurt/curcuna/repository"
	"github.com/akyurt/curcuna/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: literal path'ler parametrik path'lerden önce
// tanımlanır, yoksa router literal segment'i parametre olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	profileRepo repository.ProfileRepository,
	serverRepo repository.ServerRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, profileRepo)
	serverMw := middleware.NewServerMembershipMiddleware(serverRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authPage := func(handler http.HandlerFunc) http.Handler {
		return authMw.RequirePage(http.HandlerFunc(handler))
	}
	authServer := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(serverMw.Require(http.HandlerFunc(handler)))
	}

	// ─── Sayfa route'ları (redirect navigasyonu) ───

	// Setup navigator: ilk sunucuya yönlendirir veya setup cevabı döner
	mux.Handle("GET /community", authPage(h.Community.Home))
	mux.Handle("GET /community/{$}", authPage(h.Community.Home))

	// Davet redemption — wildcard, boş kod da buraya düşer
	mux.Handle("GET /community/invite/{inviteCode...}", authPage(h.Invite.Redeem))

	// Sunucu görünümü: membership guard + sidebar
	mux.Handle("GET /community/servers/{serverId}", authPage(h.Community.ServerView))

	// ─── Auth API ───

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)

	// ─── Server API ───

	mux.Handle("GET /api/servers", auth(h.Server.List))
	mux.Handle("POST /api/servers", auth(h.Server.Create))
	mux.Handle("GET /api/servers/{serverId}", authServer(h.Server.Get))
	mux.Handle("PATCH /api/servers/{serverId}", authServer(h.Server.Update))
	mux.Handle("DELETE /api/servers/{serverId}", authServer(h.Server.Delete))
	mux.Handle("POST /api/servers/{serverId}/leave", authServer(h.Server.Leave))
	mux.Handle("PATCH /api/servers/{serverId}/invite-code", authServer(h.Invite.RegenerateInviteCode))

	// ─── Channel API ───

	mux.Handle("POST /api/servers/{serverId}/channels", authServer(h.Channel.Create))
	mux.Handle("DELETE /api/servers/{serverId}/channels/{channelId}", authServer(h.Channel.Delete))

	// ─── Member API ───

	mux.Handle("GET /api/servers/{serverId}/members", authServer(h.Member.List))
	mux.Handle("PATCH /api/servers/{serverId}/members/{profileId}", authServer(h.Member.UpdateRole))
	mux.Handle("DELETE /api/servers/{serverId}/members/{profileId}", authServer(h.Member.Kick))
}
