// Package main — Service katmanı başlatma.
//
// initServices, tüm service'leri ve rate limiter'ları constructor
// injection ile oluşturur.
package main

import (
	"log"
	"time"

	"github.com/akyurt/curcuna/config"
	"github.com/akyurt/curcuna/pkg/email"
	"github.com/akyurt/curcuna/pkg/ratelimit"
	"github.com/akyurt/curcuna/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth    services.AuthService
	Server  services.ServerService
	Invite  services.InviteService
	Channel services.ChannelService
	Member  services.MemberService
}

// RateLimiters, rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri oluşturur.
//
// Email gönderimi opsiyoneldir: Resend credential'ları eksikse
// ForgotPassword akışı sadece log yazar, uygulama çalışmaya devam eder.
func initServices(repos *Repositories, cfg *config.Config) (*Services, *RateLimiters) {
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[init] email sending enabled (resend)")
	} else {
		log.Println("[init] email sending disabled: RESEND_API_KEY, FROM_EMAIL or APP_URL missing")
	}

	authService := services.NewAuthService(
		repos.Profile,
		repos.Session,
		repos.ResetToken,
		emailSender,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	serverService := services.NewServerService(repos.Server, repos.Member, repos.Channel)
	inviteService := services.NewInviteService(repos.Server)
	channelService := services.NewChannelService(repos.Channel, repos.Member)
	memberService := services.NewMemberService(repos.Member, repos.Server)

	limiters := &RateLimiters{
		// 2 dakikada 5 deneme
		Login: ratelimit.NewLoginRateLimiter(5, 2*time.Minute),
	}

	return &Services{
		Auth:    authService,
		Server:  serverService,
		Invite:  inviteService,
		Channel: channelService,
		Member:  memberService,
	}, limiters
}
