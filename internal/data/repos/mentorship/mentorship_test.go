package mentorship

import (
	"context"
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

func TestMentorProfileRepoListActive(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewMentorProfileRepo(gdb, testutil.Logger(t))

	active := testutil.SeedMentor(t, ctx, tx, "active-mentor@example.com", "Go")
	inactive := testutil.SeedMentor(t, ctx, tx, "inactive-mentor@example.com", "SQL")
	testutil.Deactivate(t, ctx, tx, inactive)
	testutil.SeedUser(t, ctx, tx, "learner@example.com")

	got, err := repo.ListActive(ctx, tx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(got) != 1 || got[0].UserID != active.ID {
		t.Fatalf("ListActive: expected only the active mentor, got %+v", got)
	}
	if got[0].User == nil || got[0].User.Email != "active-mentor@example.com" {
		t.Fatalf("ListActive: expected preloaded user, got %+v", got[0].User)
	}

	p, err := repo.GetByUserID(ctx, tx, inactive.ID)
	if err != nil || p == nil || p.Expertise == nil || *p.Expertise != "SQL" {
		t.Fatalf("GetByUserID: got %+v, %v", p, err)
	}
}

func TestMentorshipRequestRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	repo := NewMentorshipRequestRepo(gdb, testutil.Logger(t))

	learner := testutil.SeedUser(t, ctx, tx, "req-learner@example.com")
	mentor := testutil.SeedMentor(t, ctx, tx, "req-mentor@example.com", "Go")

	msg := "please"
	created, err := repo.Create(ctx, tx, []*types.MentorshipRequest{
		{UserID: learner.ID, MentorID: mentor.ID, Message: &msg},
		{UserID: learner.ID, MentorID: mentor.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, r := range created {
		if r.Status != types.MentorshipPending {
			t.Fatalf("Create: expected pending status, got %q", r.Status)
		}
	}

	sent, err := repo.ListSent(ctx, tx, learner.ID)
	if err != nil || len(sent) != 2 || sent[0].ID != created[1].ID {
		t.Fatalf("ListSent: expected 2 newest-first, got %+v, %v", sent, err)
	}
	received, err := repo.ListReceived(ctx, tx, mentor.ID)
	if err != nil || len(received) != 2 {
		t.Fatalf("ListReceived: expected 2, got %d, %v", len(received), err)
	}
	none, err := repo.ListReceived(ctx, tx, learner.ID)
	if err != nil || len(none) != 0 {
		t.Fatalf("ListReceived (learner): expected none, got %d, %v", len(none), err)
	}

	moved, err := repo.UpdateStatus(ctx, tx, created[0].ID, types.MentorshipAccepted)
	if err != nil || !moved {
		t.Fatalf("UpdateStatus: got %v, %v; want true", moved, err)
	}
	moved, err = repo.UpdateStatus(ctx, tx, created[0].ID, types.MentorshipRejected)
	if err != nil || moved {
		t.Fatalf("UpdateStatus (resolved): got %v, %v; want false", moved, err)
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil || got == nil || got.Status != types.MentorshipAccepted {
		t.Fatalf("GetByID: got %+v, %v", got, err)
	}
	missing, err := repo.GetByID(ctx, tx, 999999)
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): got %+v, %v", missing, err)
	}
}
