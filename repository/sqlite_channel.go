// Package repository — ChannelRepository'nin SQLite implementasyonu.
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

type sqliteChannelRepo struct {
	db database.TxQuerier
}

// NewSQLiteChannelRepo, constructor.
func NewSQLiteChannelRepo(db database.TxQuerier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

func (r *sqliteChannelRepo) ListByServer(ctx context.Context, serverID string) ([]models.Channel, error) {
	// created_at tiebreak'i id ile — aynı saniyede oluşturulan kanallar
	// için sıralama deterministik kalır.
	query := `
		SELECT id, server_id, name, type, created_at
		FROM channels
		WHERE server_id = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.ServerID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return channels, nil
}

func (r *sqliteChannelRepo) GetByID(ctx context.Context, channelID string) (*models.Channel, error) {
	c := &models.Channel{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, server_id, name, type, created_at FROM channels WHERE id = ?`,
		channelID,
	).Scan(&c.ID, &c.ServerID, &c.Name, &c.Type, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return c, nil
}

func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO channels (id, server_id, name, type)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`,
		channel.ID, channel.ServerID, channel.Name, channel.Type,
	).Scan(&channel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

func (r *sqliteChannelRepo) Delete(ctx context.Context, channelID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return checkAffected(result)
}
