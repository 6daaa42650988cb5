// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/akyurt/curcuna/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Community *handlers.CommunityHandler
	Invite    *handlers.InviteHandler
	Server    *handlers.ServerHandler
	Channel   *handlers.ChannelHandler
	Member    *handlers.MemberHandler
}

// initHandlers, service'lerden tüm handler'ları oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Community: handlers.NewCommunityHandler(svcs.Server),
		Invite:    handlers.NewInviteHandler(svcs.Invite, svcs.Server),
		Server:    handlers.NewServerHandler(svcs.Server),
		Channel:   handlers.NewChannelHandler(svcs.Channel),
		Member:    handlers.NewMemberHandler(svcs.Member),
	}
}
