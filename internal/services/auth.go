package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/data/db"
	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const TokenTypeBearer = "bearer"

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AccessToken, error)
	Login(ctx context.Context, email, password string) (*AccessToken, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	hasher        *auth.Hasher
	tokens        *auth.TokenService
	notifications NotificationService
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	hasher *auth.Hasher,
	tokens *auth.TokenService,
	notifications NotificationService,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		hasher:        hasher,
		tokens:        tokens,
		notifications: notifications,
	}
}

func errEmailTaken() *apierr.Error {
	return apierr.Conflict("email_taken", "Email already registered")
}

func errInvalidCredentials() *apierr.Error {
	return apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("Invalid credentials"))
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*AccessToken, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, apierr.BadRequest("validation_error", "email and password are required")
	}
	var fullName *string
	if in.FullName != nil {
		if v := strings.TrimSpace(*in.FullName); v != "" {
			fullName = &v
		}
	}

	digest, err := as.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *types.User
	var welcome *types.Notification
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return errEmailTaken()
		}
		created, err := as.userRepo.Create(ctx, tx, []*types.User{{
			Email:          email,
			HashedPassword: digest,
			FullName:       fullName,
			IsActive:       true,
		}})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return errEmailTaken()
			}
			return fmt.Errorf("create user: %w", err)
		}
		user = created[0]

		welcome, err = as.notifications.Create(ctx, tx, user.ID, "Welcome to SkillBridge, "+user.DisplayName()+"!")
		return err
	})
	if err != nil {
		return nil, err
	}
	as.notifications.Publish(ctx, welcome)
	as.log.Info("User registered", "user_id", user.ID)

	return as.issue(user)
}

func (as *authService) Login(ctx context.Context, email, password string) (*AccessToken, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errInvalidCredentials()
	}
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, errInvalidCredentials()
	}
	user := users[0]
	if !as.hasher.Verify(password, user.HashedPassword) || !user.IsActive {
		return nil, errInvalidCredentials()
	}
	return as.issue(user)
}

func (as *authService) issue(user *types.User) (*AccessToken, error) {
	tok, err := as.tokens.IssueAccess(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &AccessToken{AccessToken: tok, TokenType: TokenTypeBearer}, nil
}
