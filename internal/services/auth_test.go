package services

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

func TestAuthServiceRegisterIssuesTokenAndWelcome(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	name := "  Ada Lovelace "

	tok, err := env.auth.Register(ctx, RegisterInput{Email: " ada@example.com ", Password: "s3cret", FullName: &name})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Fatalf("Register: unexpected token %+v", tok)
	}

	users, err := env.users.GetByEmails(ctx, nil, []string{"ada@example.com"})
	if err != nil || len(users) != 1 {
		t.Fatalf("registered user lookup: got %d, %v", len(users), err)
	}
	u := users[0]
	if !u.IsActive || u.IsMentor || u.FullName == nil || *u.FullName != "Ada Lovelace" {
		t.Fatalf("registered user: unexpected row %+v", u)
	}

	claims, err := env.tokens.Validate(tok.AccessToken)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != strconv.FormatInt(u.ID, 10) {
		t.Fatalf("subject: want user id %d, got %q", u.ID, claims.Subject)
	}

	notes, err := env.notifications.ListForUser(ctx, u.ID)
	if err != nil || len(notes) != 1 || notes[0].Message != "Welcome to SkillBridge, Ada Lovelace!" {
		t.Fatalf("welcome notification: got %+v, %v", notes, err)
	}
	msgs := env.bus.Messages()
	if len(msgs) != 1 || msgs[0].Channel != realtime.UserChannel(u.ID) || msgs[0].Frame.NotificationID != notes[0].ID {
		t.Fatalf("published welcome: got %+v", msgs)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := env.auth.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "other"})
	apiErr, ok := apierr.As(err)
	if !ok || apiErr.Status != http.StatusBadRequest || apiErr.Error() != "Email already registered" {
		t.Fatalf("duplicate Register: want 400 Email already registered, got %v", err)
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(context.Background(), RegisterInput{Email: "   ", Password: "pw"})
	if apiErr, ok := apierr.As(err); !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("blank email: want 400, got %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, env.db, "login@example.com")
	inactive := testutil.SeedUser(t, ctx, env.db, "inactive@example.com")
	testutil.Deactivate(t, ctx, env.db, inactive)

	tok, err := env.auth.Login(ctx, "login@example.com", testutil.SeedPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := env.tokens.Validate(tok.AccessToken)
	if err != nil || claims.Subject != strconv.FormatInt(u.ID, 10) {
		t.Fatalf("Login token: claims %+v, %v", claims, err)
	}

	for _, tc := range []struct{ name, email, password string }{
		{"wrong password", "login@example.com", "nope"},
		{"unknown email", "ghost@example.com", testutil.SeedPassword},
		{"inactive user", "inactive@example.com", testutil.SeedPassword},
		{"empty", "", ""},
	} {
		_, err := env.auth.Login(ctx, tc.email, tc.password)
		apiErr, ok := apierr.As(err)
		if !ok || apiErr.Status != http.StatusUnauthorized || apiErr.Error() != "Invalid credentials" {
			t.Fatalf("%s: want 401 Invalid credentials, got %v", tc.name, err)
		}
	}
}
