package repository

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akyurt/curcuna/database"
	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/google/uuid"
)

// newTestDB, geçici dosya üzerinde migration'ları uygulanmış bir DB açar.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestProfile, FK'ler için gerekli profil satırını ekler.
func createTestProfile(t *testing.T, db *database.DB, username string) *models.Profile {
	t.Helper()

	repo := NewSQLiteProfileRepo(db.Conn)
	profile := &models.Profile{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "x",
	}
	if err := repo.Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to create test profile %s: %v", username, err)
	}
	return profile
}

// createTestServer, owner admin üyeliği ve default kanalıyla sunucu oluşturur.
func createTestServer(t *testing.T, db *database.DB, ownerID, inviteCode string) *models.Server {
	t.Helper()

	repo := NewSQLiteServerRepo(db.Conn)
	server := &models.Server{
		ID:         uuid.NewString(),
		Name:       "test server",
		InviteCode: inviteCode,
		OwnerID:    ownerID,
	}
	channel := &models.Channel{
		ID:   uuid.NewString(),
		Name: models.DefaultChannelName,
		Type: models.ChannelTypeText,
	}
	if err := repo.Create(context.Background(), server, channel); err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	return server
}

func countMembers(t *testing.T, db *database.DB, serverID, profileID string) int {
	t.Helper()

	var count int
	err := db.Conn.QueryRow(
		`SELECT COUNT(*) FROM members WHERE server_id = ? AND profile_id = ?`,
		serverID, profileID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	return count
}

func TestServerCreateSeedsOwnerAndChannel(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	server := createTestServer(t, db, owner.ID, "code-create")

	memberRepo := NewSQLiteMemberRepo(db.Conn)
	role, err := memberRepo.GetRole(context.Background(), server.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("owner role = %s, want %s", role, models.RoleAdmin)
	}

	channelRepo := NewSQLiteChannelRepo(db.Conn)
	channels, err := channelRepo.ListByServer(context.Background(), server.ID)
	if err != nil {
		t.Fatalf("failed to list channels: %v", err)
	}
	if len(channels) != 1 || channels[0].Name != models.DefaultChannelName {
		t.Errorf("expected single %q channel, got %+v", models.DefaultChannelName, channels)
	}
}

func TestRedeemInviteCreatesGuestMembership(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	server := createTestServer(t, db, owner.ID, "code-join")

	repo := NewSQLiteServerRepo(db.Conn)
	got, alreadyMember, err := repo.RedeemInvite(context.Background(), "code-join", joiner.ID)
	if err != nil {
		t.Fatalf("RedeemInvite failed: %v", err)
	}
	if alreadyMember {
		t.Error("alreadyMember = true for first redemption")
	}
	if got.ID != server.ID {
		t.Errorf("redeemed server id = %s, want %s", got.ID, server.ID)
	}

	memberRepo := NewSQLiteMemberRepo(db.Conn)
	role, err := memberRepo.GetRole(context.Background(), server.ID, joiner.ID)
	if err != nil {
		t.Fatalf("membership missing after redemption: %v", err)
	}
	if role != models.RoleGuest {
		t.Errorf("joined role = %s, want %s", role, models.RoleGuest)
	}
}

func TestRedeemInviteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	server := createTestServer(t, db, owner.ID, "code-idem")

	repo := NewSQLiteServerRepo(db.Conn)
	memberRepo := NewSQLiteMemberRepo(db.Conn)
	ctx := context.Background()

	if _, _, err := repo.RedeemInvite(ctx, "code-idem", joiner.ID); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}

	// Rolü yükselt — tekrar redemption'ın rolü sıfırlamadığını görmek için
	if err := memberRepo.UpdateRole(ctx, server.ID, joiner.ID, models.RoleModerator); err != nil {
		t.Fatalf("failed to update role: %v", err)
	}

	got, alreadyMember, err := repo.RedeemInvite(ctx, "code-idem", joiner.ID)
	if err != nil {
		t.Fatalf("second redemption failed: %v", err)
	}
	if !alreadyMember {
		t.Error("alreadyMember = false for repeat redemption")
	}
	if got.ID != server.ID {
		t.Errorf("repeat redemption server id = %s, want %s", got.ID, server.ID)
	}

	if n := countMembers(t, db, server.ID, joiner.ID); n != 1 {
		t.Errorf("membership row count = %d, want 1", n)
	}

	role, err := memberRepo.GetRole(ctx, server.ID, joiner.ID)
	if err != nil {
		t.Fatalf("failed to read role: %v", err)
	}
	if role != models.RoleModerator {
		t.Errorf("role after repeat redemption = %s, want %s (must not be reset)", role, models.RoleModerator)
	}
}

func TestRedeemInviteOwnerIsAlreadyMember(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	server := createTestServer(t, db, owner.ID, "code-owner")

	repo := NewSQLiteServerRepo(db.Conn)
	got, alreadyMember, err := repo.RedeemInvite(context.Background(), "code-owner", owner.ID)
	if err != nil {
		t.Fatalf("RedeemInvite failed: %v", err)
	}
	if !alreadyMember {
		t.Error("owner redeeming own invite should report alreadyMember")
	}
	if got.ID != server.ID {
		t.Errorf("server id = %s, want %s", got.ID, server.ID)
	}

	// Owner'ın admin rolü korunmalı
	memberRepo := NewSQLiteMemberRepo(db.Conn)
	role, err := memberRepo.GetRole(context.Background(), server.ID, owner.ID)
	if err != nil {
		t.Fatalf("failed to read owner role: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("owner role = %s, want %s", role, models.RoleAdmin)
	}
}

func TestRedeemInviteUnknownCode(t *testing.T) {
	db := newTestDB(t)
	joiner := createTestProfile(t, db, "joiner")

	repo := NewSQLiteServerRepo(db.Conn)
	_, _, err := repo.RedeemInvite(context.Background(), "no-such-code", joiner.ID)
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("RedeemInvite with unknown code: err = %v, want ErrNotFound", err)
	}
}

func TestRotatedInviteCodeInvalidatesOldCode(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	late := createTestProfile(t, db, "latecomer")
	server := createTestServer(t, db, owner.ID, "code-old")

	repo := NewSQLiteServerRepo(db.Conn)
	ctx := context.Background()

	if _, _, err := repo.RedeemInvite(ctx, "code-old", joiner.ID); err != nil {
		t.Fatalf("redemption with original code failed: %v", err)
	}

	if err := repo.UpdateInviteCode(ctx, server.ID, "code-new"); err != nil {
		t.Fatalf("failed to rotate invite code: %v", err)
	}

	// Eski kod artık geçersiz
	if _, _, err := repo.RedeemInvite(ctx, "code-old", late.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("old code after rotation: err = %v, want ErrNotFound", err)
	}

	// Yeni kod çalışır
	if _, _, err := repo.RedeemInvite(ctx, "code-new", late.ID); err != nil {
		t.Errorf("new code after rotation failed: %v", err)
	}

	// Rotation mevcut üyelikleri etkilemez
	if n := countMembers(t, db, server.ID, joiner.ID); n != 1 {
		t.Errorf("existing membership lost after rotation (count = %d)", n)
	}
}

func TestGetByIDForMemberHidesServerFromNonMembers(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	stranger := createTestProfile(t, db, "stranger")
	server := createTestServer(t, db, owner.ID, "code-guard")

	repo := NewSQLiteServerRepo(db.Conn)
	ctx := context.Background()

	if _, err := repo.GetByIDForMember(ctx, server.ID, owner.ID); err != nil {
		t.Errorf("member lookup failed: %v", err)
	}

	// Üye olmayan için sunucu yok gibi davranılır
	if _, err := repo.GetByIDForMember(ctx, server.ID, stranger.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("non-member lookup: err = %v, want ErrNotFound", err)
	}

	// Var olmayan sunucu da aynı hatayı verir
	if _, err := repo.GetByIDForMember(ctx, "missing", owner.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("missing server lookup: err = %v, want ErrNotFound", err)
	}
}

func TestFirstForProfileReturnsEarliestJoin(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	first := createTestServer(t, db, owner.ID, "code-first")
	createTestServer(t, db, owner.ID, "code-second")

	repo := NewSQLiteServerRepo(db.Conn)
	ctx := context.Background()

	if _, err := repo.FirstForProfile(ctx, joiner.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("profile with no memberships: err = %v, want ErrNotFound", err)
	}

	if _, _, err := repo.RedeemInvite(ctx, "code-first", joiner.ID); err != nil {
		t.Fatalf("redemption failed: %v", err)
	}

	// joined_at saniye hassasiyetindedir — ilk üyeliği geriye çekerek
	// sıralamayı deterministik yap
	if _, err := db.Conn.Exec(
		`UPDATE members SET joined_at = datetime('now', '-1 hour') WHERE server_id = ? AND profile_id = ?`,
		first.ID, joiner.ID,
	); err != nil {
		t.Fatalf("failed to backdate membership: %v", err)
	}

	if _, _, err := repo.RedeemInvite(ctx, "code-second", joiner.ID); err != nil {
		t.Fatalf("redemption failed: %v", err)
	}

	got, err := repo.FirstForProfile(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("FirstForProfile failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("first server id = %s, want %s", got.ID, first.ID)
	}
}

func TestDeleteServerCascadesMembershipsAndChannels(t *testing.T) {
	db := newTestDB(t)
	owner := createTestProfile(t, db, "owner")
	server := createTestServer(t, db, owner.ID, "code-del")

	repo := NewSQLiteServerRepo(db.Conn)
	if err := repo.Delete(context.Background(), server.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if n := countMembers(t, db, server.ID, owner.ID); n != 0 {
		t.Errorf("memberships not cascaded (count = %d)", n)
	}

	var channelCount int
	if err := db.Conn.QueryRow(`SELECT COUNT(*) FROM channels WHERE server_id = ?`, server.ID).Scan(&channelCount); err != nil {
		t.Fatalf("failed to count channels: %v", err)
	}
	if channelCount != 0 {
		t.Errorf("channels not cascaded (count = %d)", channelCount)
	}
}
