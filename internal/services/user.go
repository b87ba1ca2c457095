package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	GetLanguage(ctx context.Context, userID int64) (string, error)
	SetLanguage(ctx context.Context, userID int64, code string) (string, error)
}

type userService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	languages repos.LanguagePreferenceRepo
}

// BCP 47-ish: "en", "pt-BR", "zh-Hant".
var languageCodePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,4})?$`)

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, languages repos.LanguagePreferenceRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:        db,
		log:       serviceLog,
		userRepo:  userRepo,
		languages: languages,
	}
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(dbc.Ctx)
	if rd == nil {
		us.log.Warn("Request data not set in context")
		return nil, fmt.Errorf("request data not set in context")
	}
	if rd.UserID == 0 {
		us.log.Warn("User id not set in request data")
		return nil, fmt.Errorf("user id not set in request data")
	}

	found, err := us.userRepo.GetByIDs(dbc.Ctx, dbc.Tx, []int64{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("User")
	}
	return found[0], nil
}

func (us *userService) GetLanguage(ctx context.Context, userID int64) (string, error) {
	pref, err := us.languages.GetByUserID(ctx, nil, userID)
	if err != nil {
		return "", fmt.Errorf("load language preference: %w", err)
	}
	if pref == nil || pref.LanguageCode == "" {
		return types.DefaultLanguageCode, nil
	}
	return pref.LanguageCode, nil
}

func (us *userService) SetLanguage(ctx context.Context, userID int64, code string) (string, error) {
	code = strings.TrimSpace(code)
	if !languageCodePattern.MatchString(code) {
		return "", apierr.BadRequest("invalid_language_code", "language_code must look like \"en\" or \"pt-BR\"")
	}
	if err := us.languages.Upsert(ctx, nil, &types.LanguagePreference{UserID: userID, LanguageCode: code}); err != nil {
		return "", fmt.Errorf("save language preference: %w", err)
	}
	return code, nil
}
