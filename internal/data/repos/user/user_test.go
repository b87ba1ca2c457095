package user

import (
	"context"
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/data/db"
	"github.com/yungbote/skillbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)

	repo := NewUserRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{Email: "userrepo@example.com", HashedPassword: "digest", IsActive: true},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == 0 {
		t.Fatalf("Create: expected 1 user with an id, got %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(ctx, tx, []int64{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].Email != "userrepo@example.com" {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByEmails, err := repo.GetByEmails(ctx, tx, []string{created[0].Email})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmails) != 1 || gotByEmails[0].ID != created[0].ID {
		t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
	}

	exists, err := repo.EmailExists(ctx, tx, created[0].Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: got %v, %v; want true", exists, err)
	}
	exists, err = repo.EmailExists(ctx, tx, "does-not-exist@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists (missing): got %v, %v; want false", exists, err)
	}

	_, err = repo.Create(ctx, tx, []*types.User{{Email: "userrepo@example.com", HashedPassword: "x", IsActive: true}})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("duplicate email: expected unique violation, got %v", err)
	}
}

func TestUserRepoMentorFlags(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewUserRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "mentorflags@example.com")

	m, err := repo.GetActiveMentor(ctx, tx, u.ID)
	if err != nil || m != nil {
		t.Fatalf("GetActiveMentor on plain user: got %+v, %v", m, err)
	}

	if err := repo.SetMentor(ctx, tx, u.ID, true); err != nil {
		t.Fatalf("SetMentor: %v", err)
	}
	m, err = repo.GetActiveMentor(ctx, tx, u.ID)
	if err != nil || m == nil || !m.IsMentor {
		t.Fatalf("GetActiveMentor after SetMentor: got %+v, %v", m, err)
	}

	if err := repo.SetActive(ctx, tx, u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	m, err = repo.GetActiveMentor(ctx, tx, u.ID)
	if err != nil || m != nil {
		t.Fatalf("inactive mentor must not be returned: got %+v, %v", m, err)
	}
}

func TestLanguagePreferenceRepoUpsert(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewLanguagePreferenceRepo(gdb, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "lang@example.com")

	got, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil || got != nil {
		t.Fatalf("GetByUserID before upsert: got %+v, %v", got, err)
	}

	if err := repo.Upsert(ctx, tx, &types.LanguagePreference{UserID: u.ID, LanguageCode: "fr"}); err != nil {
		t.Fatalf("Upsert fr: %v", err)
	}
	if err := repo.Upsert(ctx, tx, &types.LanguagePreference{UserID: u.ID, LanguageCode: "de"}); err != nil {
		t.Fatalf("Upsert de: %v", err)
	}

	got, err = repo.GetByUserID(ctx, tx, u.ID)
	if err != nil || got == nil || got.LanguageCode != "de" {
		t.Fatalf("GetByUserID after upsert: got %+v, %v", got, err)
	}
}
