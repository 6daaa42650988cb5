package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
)

func TestListByServerOrdersByRoleRank(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestProfile(t, db, "owner")
	mod := createTestProfile(t, db, "mod")
	guest := createTestProfile(t, db, "guest")
	server := createTestServer(t, db, owner.ID, "code-order")

	serverRepo := NewSQLiteServerRepo(db.Conn)
	memberRepo := NewSQLiteMemberRepo(db.Conn)

	for _, p := range []*models.Profile{mod, guest} {
		if _, _, err := serverRepo.RedeemInvite(ctx, "code-order", p.ID); err != nil {
			t.Fatalf("redemption failed for %s: %v", p.Username, err)
		}
	}
	if err := memberRepo.UpdateRole(ctx, server.ID, mod.ID, models.RoleModerator); err != nil {
		t.Fatalf("failed to promote moderator: %v", err)
	}

	members, err := memberRepo.ListByServer(ctx, server.ID, "")
	if err != nil {
		t.Fatalf("ListByServer failed: %v", err)
	}

	// guest < moderator < admin — alfabetik DEĞİL
	wantRoles := []models.Role{models.RoleGuest, models.RoleModerator, models.RoleAdmin}
	if len(members) != len(wantRoles) {
		t.Fatalf("member count = %d, want %d", len(members), len(wantRoles))
	}
	for i, want := range wantRoles {
		if members[i].Role != want {
			t.Errorf("members[%d].Role = %s, want %s", i, members[i].Role, want)
		}
	}
}

func TestListByServerExcludesCaller(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	server := createTestServer(t, db, owner.ID, "code-excl")

	serverRepo := NewSQLiteServerRepo(db.Conn)
	if _, _, err := serverRepo.RedeemInvite(ctx, "code-excl", joiner.ID); err != nil {
		t.Fatalf("redemption failed: %v", err)
	}

	memberRepo := NewSQLiteMemberRepo(db.Conn)
	members, err := memberRepo.ListByServer(ctx, server.ID, joiner.ID)
	if err != nil {
		t.Fatalf("ListByServer failed: %v", err)
	}

	if len(members) != 1 {
		t.Fatalf("member count = %d, want 1 (caller excluded)", len(members))
	}
	if members[0].ProfileID != owner.ID {
		t.Errorf("remaining member = %s, want owner %s", members[0].ProfileID, owner.ID)
	}
}

func TestGetRoleForNonMember(t *testing.T) {
	db := newTestDB(t)

	owner := createTestProfile(t, db, "owner")
	stranger := createTestProfile(t, db, "stranger")
	server := createTestServer(t, db, owner.ID, "code-role")

	memberRepo := NewSQLiteMemberRepo(db.Conn)
	if _, err := memberRepo.GetRole(context.Background(), server.ID, stranger.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("GetRole for non-member: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestProfile(t, db, "owner")
	joiner := createTestProfile(t, db, "joiner")
	server := createTestServer(t, db, owner.ID, "code-kick")

	serverRepo := NewSQLiteServerRepo(db.Conn)
	if _, _, err := serverRepo.RedeemInvite(ctx, "code-kick", joiner.ID); err != nil {
		t.Fatalf("redemption failed: %v", err)
	}

	memberRepo := NewSQLiteMemberRepo(db.Conn)
	if err := memberRepo.Remove(ctx, server.ID, joiner.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := memberRepo.GetRole(ctx, server.ID, joiner.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("role after removal: err = %v, want ErrNotFound", err)
	}

	// İkinci silme ErrNotFound
	if err := memberRepo.Remove(ctx, server.ID, joiner.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("second Remove: err = %v, want ErrNotFound", err)
	}
}
