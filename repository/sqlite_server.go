// Package repository — ServerRepository'nin SQLite implementasyonu.
//
// Bu repo diğerlerinden farklı olarak *sql.DB tutar: Create ve RedeemInvite
// database.WithTx ile kendi transaction'larını açar.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akyurt/curcuna/database"
	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
)

const serverColumns = `id, name, image_url, invite_code, owner_id, created_at`

type sqliteServerRepo struct {
	db *sql.DB
}

// NewSQLiteServerRepo, constructor.
func NewSQLiteServerRepo(db *sql.DB) ServerRepository {
	return &sqliteServerRepo{db: db}
}

// Create, sunucu + owner'ın admin üyeliği + ilk kanalı tek transaction'da yazar.
// Üçünden biri başarısız olursa hiçbiri kalmaz — yarım sunucu oluşmaz.
func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server, firstChannel *models.Channel) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO servers (id, name, image_url, invite_code, owner_id)
			VALUES (?, ?, ?, ?, ?)
			RETURNING created_at`,
			server.ID, server.Name, server.ImageURL, server.InviteCode, server.OwnerID,
		).Scan(&server.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: invite code collision", pkg.ErrAlreadyExists)
			}
			return fmt.Errorf("failed to create server: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO members (server_id, profile_id, role)
			VALUES (?, ?, ?)`,
			server.ID, server.OwnerID, models.RoleAdmin,
		); err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO channels (id, server_id, name, type)
			VALUES (?, ?, ?, ?)
			RETURNING created_at`,
			firstChannel.ID, server.ID, firstChannel.Name, firstChannel.Type,
		).Scan(&firstChannel.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create default channel: %w", err)
		}
		firstChannel.ServerID = server.ID

		return nil
	})
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, serverID string) (*models.Server, error) {
	return scanServer(r.db.QueryRowContext(ctx,
		`SELECT `+serverColumns+` FROM servers WHERE id = ?`, serverID))
}

// GetByIDForMember, "sunucu var mı" ve "çağıran üye mi" sorularını tek
// sorguda cevaplar. INNER JOIN sayesinde üye olmayan çağıran için sonuç
// boştur — sunucunun varlığı bile sızdırılmaz.
func (r *sqliteServerRepo) GetByIDForMember(ctx context.Context, serverID, profileID string) (*models.Server, error) {
	query := `
		SELECT s.id, s.name, s.image_url, s.invite_code, s.owner_id, s.created_at
		FROM servers s
		INNER JOIN members m ON m.server_id = s.id
		WHERE s.id = ? AND m.profile_id = ?`

	return scanServer(r.db.QueryRowContext(ctx, query, serverID, profileID))
}

func (r *sqliteServerRepo) FirstForProfile(ctx context.Context, profileID string) (*models.Server, error) {
	query := `
		SELECT s.id, s.name, s.image_url, s.invite_code, s.owner_id, s.created_at
		FROM servers s
		INNER JOIN members m ON m.server_id = s.id
		WHERE m.profile_id = ?
		ORDER BY m.joined_at ASC, s.id ASC
		LIMIT 1`

	return scanServer(r.db.QueryRowContext(ctx, query, profileID))
}

func (r *sqliteServerRepo) ListForProfile(ctx context.Context, profileID string) ([]models.ServerListItem, error) {
	query := `
		SELECT s.id, s.name, s.image_url
		FROM servers s
		INNER JOIN members m ON m.server_id = s.id
		WHERE m.profile_id = ?
		ORDER BY m.joined_at ASC, s.id ASC`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var servers []models.ServerListItem
	for rows.Next() {
		var s models.ServerListItem
		if err := rows.Scan(&s.ID, &s.Name, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		servers = append(servers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server rows: %w", err)
	}

	return servers, nil
}

func (r *sqliteServerRepo) Update(ctx context.Context, server *models.Server) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE servers SET name = ?, image_url = ? WHERE id = ?`,
		server.Name, server.ImageURL, server.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update server: %w", err)
	}

	return checkAffected(result)
}

func (r *sqliteServerRepo) UpdateInviteCode(ctx context.Context, serverID, inviteCode string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE servers SET invite_code = ? WHERE id = ?`, inviteCode, serverID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite code collision", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update invite code: %w", err)
	}

	return checkAffected(result)
}

func (r *sqliteServerRepo) Delete(ctx context.Context, serverID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, serverID)
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}

	return checkAffected(result)
}

// RedeemInvite, davet redemption'ının tek mutasyon noktası.
//
// Lookup + koşullu insert tek transaction içinde çalışır; ayrı bir
// "zaten üye mi" ön kontrolü YOKTUR. Idempotans iki mekanizmaya dayanır:
//  1. members tablosunun composite PK'sı (server_id, profile_id)
//  2. ON CONFLICT DO NOTHING — çakışmada hata yerine 0 affected row
//
// RowsAffected == 0 → çağıran zaten üyeymiş; caller için bu da başarıdır
// (aynı sunucuya redirect edilir).
func (r *sqliteServerRepo) RedeemInvite(ctx context.Context, inviteCode, profileID string) (*models.Server, bool, error) {
	var server *models.Server
	var alreadyMember bool

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		s, err := scanServer(tx.QueryRowContext(ctx,
			`SELECT `+serverColumns+` FROM servers WHERE invite_code = ?`, inviteCode))
		if err != nil {
			return err // pkg.ErrNotFound dahil — caller ayırt eder
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO members (server_id, profile_id, role)
			VALUES (?, ?, ?)
			ON CONFLICT (server_id, profile_id) DO NOTHING`,
			s.ID, profileID, models.RoleGuest,
		)
		if err != nil {
			return fmt.Errorf("failed to insert membership: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}

		server = s
		alreadyMember = affected == 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return server, alreadyMember, nil
}

func (r *sqliteServerRepo) IsMember(ctx context.Context, serverID, profileID string) (bool, error) {
	var dummy int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM members WHERE server_id = ? AND profile_id = ? LIMIT 1`,
		serverID, profileID,
	).Scan(&dummy)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}

// scanServer, tek sunucu satırı scan'inin ortak mantığı.
func scanServer(row *sql.Row) (*models.Server, error) {
	s := &models.Server{}
	err := row.Scan(&s.ID, &s.Name, &s.ImageURL, &s.InviteCode, &s.OwnerID, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan server: %w", err)
	}

	return s, nil
}

// checkAffected, UPDATE/DELETE sonuçlarının ortak "0 satır = not found" kontrolü.
func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
