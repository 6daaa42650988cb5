package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akyurt/curcuna/models"
	"github.com/akyurt/curcuna/pkg"
	"github.com/google/uuid"
)

func newServerFixture(t *testing.T) (*memStore, ServerService, ChannelService) {
	t.Helper()

	store := newMemStore()
	serverRepo := &fakeServerRepo{store: store}
	memberRepo := &fakeMemberRepo{store: store}
	channelRepo := &fakeChannelRepo{store: store}

	return store,
		NewServerService(serverRepo, memberRepo, channelRepo),
		NewChannelService(channelRepo, memberRepo)
}

func TestCreateServerSeedsDefaults(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "yeni sunucu"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}

	if server.InviteCode == "" {
		t.Error("invite code not generated")
	}
	if m := store.members[server.ID]["owner"]; m == nil || m.Role != models.RoleAdmin {
		t.Errorf("owner membership = %+v, want admin", m)
	}

	if len(store.channels) != 1 {
		t.Fatalf("channel count = %d, want 1", len(store.channels))
	}
	ch := store.channels[0]
	if ch.Name != models.DefaultChannelName || ch.Type != models.ChannelTypeText {
		t.Errorf("seeded channel = %s/%s, want %s/text", ch.Name, ch.Type, models.DefaultChannelName)
	}
}

func TestCreateServerValidatesName(t *testing.T) {
	_, svc, _ := newServerFixture(t)

	_, err := svc.CreateServer(context.Background(), "owner", &models.CreateServerRequest{Name: "   "})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("blank name: err = %v, want ErrBadRequest", err)
	}
}

func TestGetSidebarGroupsChannelsByType(t *testing.T) {
	store, svc, channelSvc := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}

	for _, tc := range []struct{ name, kind string }{
		{"duyurular", "text"},
		{"toplantı", "audio"},
		{"yayın", "video"},
		{"sohbet", "text"},
	} {
		if _, err := channelSvc.CreateChannel(ctx, server.ID, "owner", &models.CreateChannelRequest{
			Name: tc.name, Type: tc.kind,
		}); err != nil {
			t.Fatalf("CreateChannel %s failed: %v", tc.name, err)
		}
	}

	sidebar, err := svc.GetSidebar(ctx, server.ID, "owner")
	if err != nil {
		t.Fatalf("GetSidebar failed: %v", err)
	}

	// text: general + duyurular + sohbet, oluşturma sırasıyla
	wantText := []string{models.DefaultChannelName, "duyurular", "sohbet"}
	if len(sidebar.TextChannels) != len(wantText) {
		t.Fatalf("text channel count = %d, want %d", len(sidebar.TextChannels), len(wantText))
	}
	for i, want := range wantText {
		if sidebar.TextChannels[i].Name != want {
			t.Errorf("text[%d] = %s, want %s", i, sidebar.TextChannels[i].Name, want)
		}
	}

	if len(sidebar.AudioChannels) != 1 || sidebar.AudioChannels[0].Name != "toplantı" {
		t.Errorf("audio channels = %+v, want [toplantı]", sidebar.AudioChannels)
	}
	if len(sidebar.VideoChannels) != 1 || sidebar.VideoChannels[0].Name != "yayın" {
		t.Errorf("video channels = %+v, want [yayın]", sidebar.VideoChannels)
	}

	if sidebar.CallerRole != models.RoleAdmin {
		t.Errorf("caller role = %s, want %s", sidebar.CallerRole, models.RoleAdmin)
	}
}

func TestGetSidebarExcludesCallerAndOrdersMembers(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}

	store.addProfile("mod", "mod")
	store.addProfile("g1", "g1")
	store.addProfile("g2", "g2")
	store.addMember(server.ID, "mod", models.RoleModerator)
	store.addMember(server.ID, "g1", models.RoleGuest)
	store.addMember(server.ID, "g2", models.RoleGuest)

	sidebar, err := svc.GetSidebar(ctx, server.ID, "g1")
	if err != nil {
		t.Fatalf("GetSidebar failed: %v", err)
	}

	// Çağıran (g1) hariç; guest'ler önce, sonra moderator, sonra admin
	wantOrder := []string{"g2", "mod", "owner"}
	if len(sidebar.Members) != len(wantOrder) {
		t.Fatalf("member count = %d, want %d", len(sidebar.Members), len(wantOrder))
	}
	for i, want := range wantOrder {
		if sidebar.Members[i].ProfileID != want {
			t.Errorf("members[%d] = %s, want %s", i, sidebar.Members[i].ProfileID, want)
		}
	}

	if sidebar.CallerRole != models.RoleGuest {
		t.Errorf("caller role = %s, want %s", sidebar.CallerRole, models.RoleGuest)
	}
}

func TestGetSidebarDeniesNonMember(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}

	if _, err := svc.GetSidebar(ctx, server.ID, "stranger"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("non-member sidebar: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetSidebar(ctx, uuid.NewString(), "owner"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("missing server sidebar: err = %v, want ErrNotFound", err)
	}
}

func TestRegenerateInviteCodeRequiresModerator(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}
	store.addMember(server.ID, "guest", models.RoleGuest)
	store.addMember(server.ID, "mod", models.RoleModerator)

	if _, err := svc.RegenerateInviteCode(ctx, server.ID, "guest"); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("guest rotation: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.RegenerateInviteCode(ctx, server.ID, "stranger"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("stranger rotation: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.RegenerateInviteCode(ctx, server.ID, "mod"); err != nil {
		t.Errorf("moderator rotation failed: %v", err)
	}
}

func TestDeleteServerOnlyOwner(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}
	store.addMember(server.ID, "admin2", models.RoleAdmin)

	// Admin rolü bile yetmez — sadece owner
	if err := svc.DeleteServer(ctx, server.ID, "admin2"); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("non-owner delete: err = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteServer(ctx, server.ID, "owner"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if _, ok := store.servers[server.ID]; ok {
		t.Error("server still present after delete")
	}
}

func TestLeaveServerOwnerCannotLeave(t *testing.T) {
	store, svc, _ := newServerFixture(t)
	ctx := context.Background()

	store.addProfile("owner", "owner")
	server, err := svc.CreateServer(ctx, "owner", &models.CreateServerRequest{Name: "takım"})
	if err != nil {
		t.Fatalf("CreateServer failed: %v", err)
	}
	store.addMember(server.ID, "joiner", models.RoleGuest)

	if err := svc.LeaveServer(ctx, server.ID, "owner"); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("owner leave: err = %v, want ErrForbidden", err)
	}
	if err := svc.LeaveServer(ctx, server.ID, "joiner"); err != nil {
		t.Errorf("member leave failed: %v", err)
	}
	if store.members[server.ID]["joiner"] != nil {
		t.Error("membership still present after leave")
	}
	if err := svc.LeaveServer(ctx, server.ID, "joiner"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("repeat leave: err = %v, want ErrNotFound", err)
	}
}
