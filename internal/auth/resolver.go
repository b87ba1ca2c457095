package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const bearerPrefix = "Bearer "

// UserFinder is the slice of the user repo the resolver needs.
type UserFinder interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []int64) ([]*types.User, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error)
}

// Resolver turns a bearer credential into an active user. HTTP middleware and the
// WebSocket handshake share ResolveToken and differ only in where the token comes from.
type Resolver struct {
	log    *logger.Logger
	tokens *TokenService
	users  UserFinder
}

func NewResolver(log *logger.Logger, tokens *TokenService, users UserFinder) *Resolver {
	return &Resolver{
		log:    log.With("service", "AuthResolver"),
		tokens: tokens,
		users:  users,
	}
}

// BearerToken extracts the token from an Authorization header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrUnauthenticated
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

func (r *Resolver) ResolveBearer(ctx context.Context, header string) (*types.User, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}
	return r.ResolveToken(ctx, token)
}

func (r *Resolver) ResolveToken(ctx context.Context, token string) (*types.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := r.tokens.Validate(token)
	if err != nil {
		r.log.Debug("token rejected", "reason", err)
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	u, err := r.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// lookup tries the numeric id path first and falls back to email exactly once.
func (r *Resolver) lookup(ctx context.Context, sub string) (*types.User, error) {
	if id, ok := parseNumericSubject(sub); ok {
		found, err := r.users.GetByIDs(ctx, nil, []int64{id})
		if err != nil {
			return nil, fmt.Errorf("lookup user by id: %w", err)
		}
		if len(found) > 0 {
			return found[0], nil
		}
	}
	found, err := r.users.GetByEmails(ctx, nil, []string{sub})
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func parseNumericSubject(sub string) (int64, bool) {
	if sub == "" {
		return 0, false
	}
	for _, ch := range sub {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
