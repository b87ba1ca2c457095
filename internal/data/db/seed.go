package db

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type SeedData struct {
	Users   []SeedUser   `yaml:"users"`
	Modules []SeedModule `yaml:"modules"`
}

type SeedUser struct {
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	FullName string      `yaml:"full_name"`
	Mentor   *SeedMentor `yaml:"mentor"`
}

type SeedMentor struct {
	Expertise string `yaml:"expertise"`
	Bio       string `yaml:"bio"`
}

type SeedModule struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Lessons     []SeedLesson `yaml:"lessons"`
	Quiz        *SeedQuiz    `yaml:"quiz"`
}

type SeedLesson struct {
	Title      string `yaml:"title"`
	Content    string `yaml:"content"`
	OrderIndex int    `yaml:"order_index"`
}

type SeedQuiz struct {
	Title     string         `yaml:"title"`
	Questions []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct string   `yaml:"correct"`
}

type SeedReport struct {
	UsersCreated   int
	ModulesCreated int
}

// DefaultSeedData parses the embedded demo dataset.
func DefaultSeedData() (*SeedData, error) {
	return ParseSeedData(defaultSeed)
}

func ParseSeedData(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	for _, m := range data.Modules {
		if m.Quiz == nil {
			continue
		}
		for _, q := range m.Quiz.Questions {
			if len(q.Options) != 4 {
				return nil, fmt.Errorf("seed question %q: want 4 options, got %d", q.Prompt, len(q.Options))
			}
		}
	}
	return &data, nil
}

// Seed inserts missing users and modules in one transaction. Users are keyed on email and
// modules on title, so running it again is a no-op.
func Seed(ctx context.Context, gdb *gorm.DB, hasher PasswordHasher, data *SeedData) (SeedReport, error) {
	var report SeedReport
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, su := range data.Users {
			created, err := seedUser(tx, hasher, su)
			if err != nil {
				return err
			}
			if created {
				report.UsersCreated++
			}
		}
		for _, sm := range data.Modules {
			created, err := seedModule(tx, sm)
			if err != nil {
				return err
			}
			if created {
				report.ModulesCreated++
			}
		}
		return nil
	})
	return report, err
}

func seedUser(tx *gorm.DB, hasher PasswordHasher, su SeedUser) (bool, error) {
	var count int64
	if err := tx.Model(&types.User{}).Where("email = ?", su.Email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	digest, err := hasher.Hash(su.Password)
	if err != nil {
		return false, err
	}
	fullName := su.FullName
	u := &types.User{
		Email:          su.Email,
		HashedPassword: digest,
		FullName:       &fullName,
		IsActive:       true,
		IsMentor:       su.Mentor != nil,
	}
	if err := tx.Create(u).Error; err != nil {
		return false, fmt.Errorf("seed user %s: %w", su.Email, err)
	}
	if su.Mentor != nil {
		expertise, bio := su.Mentor.Expertise, su.Mentor.Bio
		profile := &types.MentorProfile{UserID: u.ID, Expertise: &expertise, Bio: &bio}
		if err := tx.Create(profile).Error; err != nil {
			return false, fmt.Errorf("seed mentor profile %s: %w", su.Email, err)
		}
	}
	return true, nil
}

func seedModule(tx *gorm.DB, sm SeedModule) (bool, error) {
	var count int64
	if err := tx.Model(&types.Module{}).Where("title = ?", sm.Title).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	desc := sm.Description
	module := &types.Module{Title: sm.Title, Description: &desc}
	if err := tx.Create(module).Error; err != nil {
		return false, fmt.Errorf("seed module %s: %w", sm.Title, err)
	}
	for _, sl := range sm.Lessons {
		content := sl.Content
		lesson := &types.Lesson{ModuleID: module.ID, Title: sl.Title, Content: &content, OrderIndex: sl.OrderIndex}
		if err := tx.Create(lesson).Error; err != nil {
			return false, fmt.Errorf("seed lesson %s: %w", sl.Title, err)
		}
	}
	if sm.Quiz == nil {
		return true, nil
	}
	quiz := &types.Quiz{ModuleID: module.ID, Title: sm.Quiz.Title}
	if err := tx.Create(quiz).Error; err != nil {
		return false, fmt.Errorf("seed quiz %s: %w", sm.Quiz.Title, err)
	}
	for _, sq := range sm.Quiz.Questions {
		q := &types.Question{
			QuizID:        quiz.ID,
			Prompt:        sq.Prompt,
			OptionA:       sq.Options[0],
			OptionB:       sq.Options[1],
			OptionC:       sq.Options[2],
			OptionD:       sq.Options[3],
			CorrectOption: sq.Correct,
		}
		if err := tx.Create(q).Error; err != nil {
			return false, fmt.Errorf("seed question %q: %w", sq.Prompt, err)
		}
	}
	return true, nil
}
