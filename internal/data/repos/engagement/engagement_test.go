package engagement

import (
	"context"
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

func TestPortfolioItemRepoOwnerScoped(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewPortfolioItemRepo(gdb, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, tx, "portfolio-owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "portfolio-other@example.com")

	created, err := repo.Create(ctx, tx, []*types.PortfolioItem{{UserID: owner.ID, Title: "Site"}})
	if err != nil || len(created) != 1 || created[0].ID == 0 {
		t.Fatalf("Create: got %+v, %v", created, err)
	}
	id := created[0].ID

	if got, err := repo.GetByIDForUser(ctx, tx, id, other.ID); err != nil || got != nil {
		t.Fatalf("GetByIDForUser (other): got %+v, %v; want nil", got, err)
	}

	if err := repo.UpdateFields(ctx, tx, id, other.ID, map[string]interface{}{"title": "Hijacked"}); err != nil {
		t.Fatalf("UpdateFields (other): %v", err)
	}
	url := "https://example.com"
	if err := repo.UpdateFields(ctx, tx, id, owner.ID, map[string]interface{}{"url": &url}); err != nil {
		t.Fatalf("UpdateFields (owner): %v", err)
	}
	got, err := repo.GetByIDForUser(ctx, tx, id, owner.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByIDForUser (owner): got %+v, %v", got, err)
	}
	if got.Title != "Site" || got.URL == nil || *got.URL != url {
		t.Fatalf("UpdateFields: expected only owner update applied, got %+v", got)
	}

	deleted, err := repo.DeleteByIDForUser(ctx, tx, id, other.ID)
	if err != nil || deleted {
		t.Fatalf("DeleteByIDForUser (other): got %v, %v; want false", deleted, err)
	}
	deleted, err = repo.DeleteByIDForUser(ctx, tx, id, owner.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByIDForUser (owner): got %v, %v; want true", deleted, err)
	}
	items, err := repo.ListByUserID(ctx, tx, owner.ID)
	if err != nil || len(items) != 0 {
		t.Fatalf("ListByUserID after delete: got %d, %v", len(items), err)
	}
}

func TestNotificationRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewNotificationRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "notified@example.com")
	other := testutil.SeedUser(t, ctx, tx, "not-notified@example.com")

	created, err := repo.Create(ctx, tx, []*types.Notification{
		{UserID: u.ID, Message: "first"},
		{UserID: u.ID, Message: "second"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListByUserID(ctx, tx, u.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByUserID: got %d, %v", len(list), err)
	}
	if list[0].ID != created[1].ID || list[0].IsRead {
		t.Fatalf("ListByUserID: expected newest unread first, got %+v", list[0])
	}

	ok, err := repo.MarkRead(ctx, tx, created[0].ID, other.ID)
	if err != nil || ok {
		t.Fatalf("MarkRead (other): got %v, %v; want false", ok, err)
	}
	ok, err = repo.MarkRead(ctx, tx, created[0].ID, u.ID)
	if err != nil || !ok {
		t.Fatalf("MarkRead: got %v, %v; want true", ok, err)
	}
	ok, err = repo.MarkRead(ctx, tx, created[0].ID, u.ID)
	if err != nil || !ok {
		t.Fatalf("MarkRead (again): got %v, %v; want true", ok, err)
	}

	list, _ = repo.ListByUserID(ctx, tx, u.ID)
	if !list[1].IsRead {
		t.Fatalf("expected first notification to be read, got %+v", list[1])
	}
}
