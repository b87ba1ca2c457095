package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/auth"
	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	"github.com/yungbote/skillbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

// recordingBus captures published messages instead of delivering them.
type recordingBus struct {
	mu   sync.Mutex
	msgs []realtime.Message
}

func (b *recordingBus) Publish(_ context.Context, msg realtime.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
	return nil
}

func (b *recordingBus) StartForwarder(context.Context, func(realtime.Message)) error { return nil }
func (b *recordingBus) Close() error                                              { return nil }

func (b *recordingBus) Messages() []realtime.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]realtime.Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

type testEnv struct {
	db     *gorm.DB
	bus    *recordingBus
	tokens *auth.TokenService

	users         repos.UserRepo
	notifications NotificationService
	auth          AuthService
	user          UserService
	content       ContentService
	quiz          QuizService
	progress      ProgressService
	certificates  CertificateService
	mentorship    MentorshipService
	portfolio     PortfolioService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	b := &recordingBus{}
	tokens := auth.NewTokenService("test-secret", 0)

	userRepo := repos.NewUserRepo(gdb, log)
	moduleRepo := repos.NewModuleRepo(gdb, log)
	lessonRepo := repos.NewLessonRepo(gdb, log)
	quizRepo := repos.NewQuizRepo(gdb, log)
	certRepo := repos.NewCertificateRepo(gdb, log)

	notifications := NewNotificationService(gdb, log, repos.NewNotificationRepo(gdb, log), b, nil)
	return &testEnv{
		db:            gdb,
		bus:           b,
		tokens:        tokens,
		users:         userRepo,
		notifications: notifications,
		auth:          NewAuthService(gdb, log, userRepo, auth.NewHasher(4), tokens, notifications),
		user:          NewUserService(gdb, log, userRepo, repos.NewLanguagePreferenceRepo(gdb, log)),
		content:       NewContentService(gdb, log, moduleRepo, lessonRepo),
		quiz:          NewQuizService(gdb, log, quizRepo, repos.NewAttemptRepo(gdb, log), nil),
		progress:      NewProgressService(gdb, log, moduleRepo, lessonRepo, repos.NewProgressRepo(gdb, log), certRepo, notifications, nil),
		certificates:  NewCertificateService(gdb, log, certRepo, userRepo),
		mentorship:    NewMentorshipService(gdb, log, userRepo, repos.NewMentorProfileRepo(gdb, log), repos.NewMentorshipRequestRepo(gdb, log), notifications),
		portfolio:     NewPortfolioService(gdb, log, repos.NewPortfolioItemRepo(gdb, log)),
	}
}
