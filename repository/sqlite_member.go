// Package repository — MemberRepository'nin SQLite implementasyonu.
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

type sqliteMemberRepo struct {
	db database.TxQuerier
}

// NewSQLiteMemberRepo, constructor.
func NewSQLiteMemberRepo(db database.TxQuerier) MemberRepository {
	return &sqliteMemberRepo{db: db}
}

// ListByServer, üyeleri rol sırasına göre döner.
// Rol sırası SQL'de CASE ile hesaplanır — enum'un total order'ı
// (guest < moderator < admin) string sıralamasıyla örtüşmediği için
// alfabetik ORDER BY yanlış sonuç verirdi.
func (r *sqliteMemberRepo) ListByServer(ctx context.Context, serverID, excludeProfileID string) ([]models.MemberWithProfile, error) {
	query := `
		SELECT m.profile_id, p.username, p.display_name, p.avatar_url, m.role, m.joined_at
		FROM members m
		INNER JOIN profiles p ON p.id = m.profile_id
		WHERE m.server_id = ? AND (? = '' OR m.profile_id != ?)
		ORDER BY CASE m.role
			WHEN 'guest' THEN 0
			WHEN 'moderator' THEN 1
			ELSE 2
		END ASC, m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID, excludeProfileID, excludeProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberWithProfile
	for rows.Next() {
		var m models.MemberWithProfile
		if err := rows.Scan(
			&m.ProfileID, &m.Username, &m.DisplayName,
			&m.AvatarURL, &m.Role, &m.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

func (r *sqliteMemberRepo) GetRole(ctx context.Context, serverID, profileID string) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM members WHERE server_id = ? AND profile_id = ?`,
		serverID, profileID,
	).Scan(&role)

	if errors.Is(err, sql.ErrNoRows) {
		return "", pkg.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member role: %w", err)
	}

	return role, nil
}

func (r *sqliteMemberRepo) UpdateRole(ctx context.Context, serverID, profileID string, role models.Role) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET role = ? WHERE server_id = ? AND profile_id = ?`,
		role, serverID, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return checkAffected(result)
}

func (r *sqliteMemberRepo) Remove(ctx context.Context, serverID, profileID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE server_id = ? AND profile_id = ?`,
		serverID, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return checkAffected(result)
}
