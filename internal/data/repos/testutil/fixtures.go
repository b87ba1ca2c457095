package testutil

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

const SeedPassword = "password123"

var seedDigest = func() string {
	d, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(d)
}()

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	name := "Test User"
	u := &types.User{
		Email:          email,
		HashedPassword: seedDigest,
		FullName:       &name,
		IsActive:       true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMentor(tb testing.TB, ctx context.Context, tx *gorm.DB, email, expertise string) *types.User {
	tb.Helper()
	u := SeedUser(tb, ctx, tx, email)
	if err := tx.WithContext(ctx).Model(u).Update("is_mentor", true).Error; err != nil {
		tb.Fatalf("flag mentor: %v", err)
	}
	u.IsMentor = true
	bio := "bio of " + email
	if err := tx.WithContext(ctx).Create(&types.MentorProfile{UserID: u.ID, Expertise: &expertise, Bio: &bio}).Error; err != nil {
		tb.Fatalf("seed mentor profile: %v", err)
	}
	return u
}

func Deactivate(tb testing.TB, ctx context.Context, tx *gorm.DB, u *types.User) {
	tb.Helper()
	if err := tx.WithContext(ctx).Model(u).Update("is_active", false).Error; err != nil {
		tb.Fatalf("deactivate user: %v", err)
	}
	u.IsActive = false
}

// SeedModule creates a module with one lesson per order index, in the given order.
func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, orderIndexes ...int) (*types.Module, []*types.Lesson) {
	tb.Helper()
	desc := "about " + title
	m := &types.Module{Title: title, Description: &desc}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	lessons := make([]*types.Lesson, 0, len(orderIndexes))
	for _, idx := range orderIndexes {
		content := fmt.Sprintf("content %d", idx)
		l := &types.Lesson{ModuleID: m.ID, Title: fmt.Sprintf("Lesson %d", idx), Content: &content, OrderIndex: idx}
		if err := tx.WithContext(ctx).Create(l).Error; err != nil {
			tb.Fatalf("seed lesson: %v", err)
		}
		lessons = append(lessons, l)
	}
	return m, lessons
}

// SeedQuiz creates a quiz with one question per correct option letter.
func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, moduleID int64, correct ...string) (*types.Quiz, []*types.Question) {
	tb.Helper()
	q := &types.Quiz{ModuleID: moduleID, Title: "Quiz"}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	questions := make([]*types.Question, 0, len(correct))
	for i, opt := range correct {
		question := &types.Question{
			QuizID:        q.ID,
			Prompt:        fmt.Sprintf("Question %d", i+1),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectOption: opt,
		}
		if err := tx.WithContext(ctx).Create(question).Error; err != nil {
			tb.Fatalf("seed question: %v", err)
		}
		questions = append(questions, question)
	}
	return q, questions
}
