package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type fakeUsers struct {
	byID       map[int64]*types.User
	byEmail    map[string]*types.User
	idCalls    int
	emailCalls int
	err        error
}

func (f *fakeUsers) GetByIDs(_ context.Context, _ *gorm.DB, ids []int64) ([]*types.User, error) {
	f.idCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) GetByEmails(_ context.Context, _ *gorm.DB, emails []string) ([]*types.User, error) {
	f.emailCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.User
	for _, e := range emails {
		if u, ok := f.byEmail[e]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func newFakeUsers(users ...*types.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]*types.User{}, byEmail: map[string]*types.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func newTestResolver(users UserFinder) (*Resolver, *TokenService) {
	tokens := NewTokenService("resolver-secret", time.Hour)
	return NewResolver(logger.NewNop(), tokens, users), tokens
}

func mustIssue(t *testing.T, tokens *TokenService, sub string) string {
	t.Helper()
	tok, err := tokens.IssueAccess(sub)
	if err != nil {
		t.Fatalf("IssueAccess(%q): %v", sub, err)
	}
	return tok
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		err    error
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer abc", want: "abc"},
		{header: "BEARER   abc  ", want: "abc"},
		{header: "", err: ErrUnauthenticated},
		{header: "Bearer", err: ErrUnauthenticated},
		{header: "Bearer    ", err: ErrUnauthenticated},
		{header: "Basic abc", err: ErrUnauthenticated},
		{header: "Token abc", err: ErrUnauthenticated},
	}
	for _, tc := range cases {
		got, err := BearerToken(tc.header)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("BearerToken(%q): expected %v, got %v", tc.header, tc.err, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q", tc.header, got, err, tc.want)
		}
	}
}

func TestResolveNumericSubject(t *testing.T) {
	users := newFakeUsers(&types.User{ID: 7, Email: "a@example.com", IsActive: true})
	r, tokens := newTestResolver(users)

	u, err := r.ResolveBearer(context.Background(), "Bearer "+mustIssue(t, tokens, "7"))
	if err != nil {
		t.Fatalf("ResolveBearer: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("user id: got %d want 7", u.ID)
	}
	if users.emailCalls != 0 {
		t.Fatalf("email lookup should not run when id matches")
	}
}

func TestResolveEmailSubject(t *testing.T) {
	users := newFakeUsers(&types.User{ID: 9, Email: "b@example.com", IsActive: true})
	r, tokens := newTestResolver(users)

	u, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "b@example.com"))
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if u.ID != 9 {
		t.Fatalf("user id: got %d want 9", u.ID)
	}
	if users.idCalls != 0 {
		t.Fatalf("id lookup should not run for a non-numeric subject")
	}
}

func TestResolveNumericSubjectPrefersID(t *testing.T) {
	byID := &types.User{ID: 5, Email: "five@example.com", IsActive: true}
	byEmail := &types.User{ID: 6, Email: "5", IsActive: true}
	r, tokens := newTestResolver(newFakeUsers(byID, byEmail))

	u, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "5"))
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if u.ID != 5 {
		t.Fatalf("numeric subject must resolve by id first: got user %d", u.ID)
	}
}

func TestResolveNumericSubjectFallsBackToEmailOnce(t *testing.T) {
	users := newFakeUsers(&types.User{ID: 6, Email: "123", IsActive: true})
	r, tokens := newTestResolver(users)

	u, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "123"))
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if u.ID != 6 || users.idCalls != 1 || users.emailCalls != 1 {
		t.Fatalf("expected one id miss then one email hit, got user=%d idCalls=%d emailCalls=%d", u.ID, users.idCalls, users.emailCalls)
	}
}

func TestResolveNumericSubjectWithoutMatch(t *testing.T) {
	users := newFakeUsers(&types.User{ID: 1, Email: "a@example.com", IsActive: true})
	r, tokens := newTestResolver(users)

	_, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "404"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if users.idCalls != 1 || users.emailCalls != 1 {
		t.Fatalf("expected exactly one id and one email lookup, got %d/%d", users.idCalls, users.emailCalls)
	}
}

func TestResolveInactiveUser(t *testing.T) {
	r, tokens := newTestResolver(newFakeUsers(&types.User{ID: 3, Email: "c@example.com", IsActive: false}))

	_, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "3"))
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("inactive user: expected ErrUserNotFound, got %v", err)
	}
}

func TestResolveFailures(t *testing.T) {
	r, tokens := newTestResolver(newFakeUsers(&types.User{ID: 1, Email: "a@example.com", IsActive: true}))
	ctx := context.Background()

	expired, err := tokens.Issue("1", -time.Second)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	noSub := mustIssue(t, tokens, "")
	foreign := mustIssue(t, NewTokenService("other-secret", time.Hour), "1")

	cases := []struct {
		name   string
		header string
		want   error
	}{
		{name: "missing header", header: "", want: ErrUnauthenticated},
		{name: "wrong scheme", header: "Basic abc", want: ErrUnauthenticated},
		{name: "empty token", header: "Bearer  ", want: ErrUnauthenticated},
		{name: "expired", header: "Bearer " + expired, want: ErrInvalidToken},
		{name: "missing subject", header: "Bearer " + noSub, want: ErrInvalidToken},
		{name: "foreign secret", header: "Bearer " + foreign, want: ErrInvalidToken},
		{name: "garbage", header: "Bearer not.a.jwt", want: ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.ResolveBearer(ctx, tc.header)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsAuthFailure(err) {
				t.Fatalf("expected an auth failure, got %v", err)
			}
		})
	}
}

func TestResolveStoreErrorIsNotAuthFailure(t *testing.T) {
	users := newFakeUsers()
	users.err = errors.New("connection refused")
	r, tokens := newTestResolver(users)

	_, err := r.ResolveToken(context.Background(), mustIssue(t, tokens, "1"))
	if err == nil || IsAuthFailure(err) {
		t.Fatalf("store failure should surface as a plain error, got %v", err)
	}
}
