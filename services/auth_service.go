// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturur. İş kuralları burada
// yaşar: şifre hash'leme, JWT üretimi, yetki kontrolleri, davet redemption
// kuralları. Service http.Request/Response bilmez ve doğrudan SQL
// çalıştırmaz — repository interface'lerini kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/akyurt/curcuna/pkg/email"
	"github.com/akyurt/curcuna/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL, şifre sıfırlama linkinin geçerlilik süresi.
const resetTokenTTL = 20 * time.Minute

// AuthService, kimlik işlemlerinin dışarıya açık API'si.
// Handler ve middleware bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// ForgotPassword, email'e şifre sıfırlama linki gönderir.
	// Hesap bulunamasa bile nil döner — email enumeration engellenir.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	// ResetPassword, email'deki token ile yeni şifre belirler.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// AuthTokens, login/register sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Profile      models.Profile `json:"profile"`
}

type authService struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	resetRepo   repository.PasswordResetRepository
	emailSender email.EmailSender // nil olabilir — email devre dışı
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
}

// NewAuthService, constructor.
// emailSender nil geçilirse ForgotPassword sessizce atlanır (dev ortamı).
func NewAuthService(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	emailSender email.EmailSender,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		emailSender: emailSender,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:  time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni profil kaydı oluşturur.
//
// Kayıt sunucu bağımsızdır: yeni profil hiçbir sunucuya üye değildir.
// Sunuculara katılım davet koduyla (InviteService.Redeem) veya yeni
// sunucu oluşturarak (ServerService.CreateServer) yapılır.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// bcrypt cost=12
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayName *string
	if req.DisplayName != "" {
		displayName = &req.DisplayName
	}

	var emailAddr *string
	if req.Email != "" {
		emailAddr = &req.Email
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Username:     req.Username,
		DisplayName:  displayName,
		Email:        emailAddr,
		PasswordHash: string(hash),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	return s.generateTokens(ctx, profile)
}

// Login, kullanıcı girişi yapar.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	profile, err := s.profileRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Username var/yok bilgisi sızdırılmaz
			return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, profile)
}

// RefreshToken, access token'ı yeniler. Eski oturum silinir, yenisi
// oluşturulur (refresh token rotation).
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if delErr := s.sessionRepo.DeleteByID(ctx, session.ID); delErr != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", delErr)
		}
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	if err := s.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old session: %w", err)
	}

	profile, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, profile)
}

// Logout, refresh token'ı iptal eder (oturumu siler).
// Token zaten geçersizse sessizce başarılı sayılır.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// ForgotPassword, şifre sıfırlama akışını başlatır.
//
// Email adresine kayıtlı hesap yoksa da nil döner — response üzerinden
// hangi adreslerin kayıtlı olduğu anlaşılamaz. Token DB'ye SHA256 hash
// olarak yazılır, plaintext'i sadece email'de yaşar.
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	if s.emailSender == nil {
		log.Printf("[auth] password reset requested for %s but email sending is disabled", req.Email)
		return nil
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := hex.EncodeToString(rawBytes)
	hashBytes := sha256.Sum256([]byte(rawToken))

	// Eski token'lar iptal — aynı anda tek aktif link
	if err := s.resetRepo.DeleteByProfile(ctx, profile.ID); err != nil {
		return fmt.Errorf("failed to invalidate old reset tokens: %w", err)
	}

	token := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		TokenHash: hex.EncodeToString(hashBytes[:]),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	if err := s.resetRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	return s.emailSender.SendPasswordReset(ctx, req.Email, rawToken)
}

// ResetPassword, geçerli bir reset token ile yeni şifre belirler.
// Token tek kullanımlıktır — başarıda silinir.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hashBytes := sha256.Sum256([]byte(req.Token))
	token, err := s.resetRepo.GetByTokenHash(ctx, hex.EncodeToString(hashBytes[:]))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if time.Now().After(token.ExpiresAt) {
		if delErr := s.resetRepo.Delete(ctx, token.ID); delErr != nil {
			return fmt.Errorf("failed to delete expired reset token: %w", delErr)
		}
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.profileRepo.UpdatePassword(ctx, token.ProfileID, string(newHash)); err != nil {
		return err
	}

	return s.resetRepo.Delete(ctx, token.ID)
}

func (s *authService) generateTokens(ctx context.Context, profile *models.Profile) (*AuthTokens, error) {
	now := time.Now()
	accessClaims := &models.TokenClaims{
		ProfileID: profile.ID,
		Username:  profile.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "curcuna",
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	session := &models.Session{
		ID:           uuid.NewString(),
		ProfileID:    profile.ID,
		RefreshToken: refreshString,
		ExpiresAt:    now.Add(s.refreshExp),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	profile.PasswordHash = ""

	return &AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		Profile:      *profile,
	}, nil
}
