// Package repository — ProfileRepository'nin SQLite implementasyonu.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akyurt/curcuna/database"
	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
)

const profileColumns = `id, username, display_name, email, avatar_url, password_hash, created_at`

type sqliteProfileRepo struct {
	db database.TxQuerier
}

// NewSQLiteProfileRepo, constructor.
// Interface döner — çağıran taraf implementasyondan bağımsız kalır.
func NewSQLiteProfileRepo(db database.TxQuerier) ProfileRepository {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, display_name, email, avatar_url, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Username, profile.DisplayName,
		profile.Email, profile.AvatarURL, profile.PasswordHash,
	).Scan(&profile.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "profiles.email") {
				return fmt.Errorf("%w: email already in use", pkg.ErrAlreadyExists)
			}
			return fmt.Errorf("%w: username already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *sqliteProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
}

func (r *sqliteProfileRepo) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username)
}

func (r *sqliteProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
}

func (r *sqliteProfileRepo) UpdatePassword(ctx context.Context, profileID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET password_hash = ? WHERE id = ?`, passwordHash, profileID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// getOne, tek profil dönen sorguların ortak scan mantığı.
func (r *sqliteProfileRepo) getOne(ctx context.Context, query string, arg any) (*models.Profile, error) {
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Username, &p.DisplayName, &p.Email,
		&p.AvatarURL, &p.PasswordHash, &p.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
// modernc.org/sqlite tiplenmiş constraint hatası expose etmez —
// mesaj kontrolü driver'ın verdiği tek yol.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
