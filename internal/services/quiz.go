package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/observability"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/scoring"
)

// QuizSession is a quiz as presented to a learner. The answer key stays
// server-side: Question.CorrectOption is never serialized.
type QuizSession struct {
	Quiz      *types.Quiz
	Questions []*types.Question
}

type SubmitResult struct {
	AttemptID int64
	Correct   int
	Total     int
	Score     float64
}

type QuizService interface {
	StartForModule(ctx context.Context, moduleID int64) (*QuizSession, error)
	// Submit grades answers and always records a new Attempt, even for repeated identical submissions.
	Submit(ctx context.Context, userID, quizID int64, answers map[int64]string) (*SubmitResult, error)
	ListAttempts(ctx context.Context, userID, quizID int64) ([]*types.Attempt, error)
}

type quizService struct {
	db       *gorm.DB
	log      *logger.Logger
	quizzes  repos.QuizRepo
	attempts repos.AttemptRepo
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewQuizService(db *gorm.DB, log *logger.Logger, quizzes repos.QuizRepo, attempts repos.AttemptRepo, metrics *observability.Metrics) QuizService {
	return &quizService{
		db:       db,
		log:      log.With("service", "QuizService"),
		quizzes:  quizzes,
		attempts: attempts,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *quizService) StartForModule(ctx context.Context, moduleID int64) (*QuizSession, error) {
	quiz, err := s.quizzes.GetFirstByModuleID(ctx, nil, moduleID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if quiz == nil {
		return nil, apierr.NotFound("Quiz")
	}
	questions, err := s.quizzes.GetQuestionsByQuizID(ctx, nil, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return &QuizSession{Quiz: quiz, Questions: questions}, nil
}

func (s *quizService) Submit(ctx context.Context, userID, quizID int64, answers map[int64]string) (*SubmitResult, error) {
	if answers == nil {
		answers = map[int64]string{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, apierr.BadRequest("invalid_answers", "answers must map question ids to option letters")
	}

	var result *SubmitResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.quizzes.GetByIDs(ctx, tx, []int64{quizID})
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		if len(found) == 0 {
			return apierr.NotFound("Quiz")
		}
		questions, err := s.quizzes.GetQuestionsByQuizID(ctx, tx, quizID)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		key := make(map[int64]string, len(questions))
		for _, q := range questions {
			key[q.ID] = q.CorrectOption
		}

		graded := scoring.Grade(key, answers)
		created, err := s.attempts.Create(ctx, tx, []*types.Attempt{{
			UserID:      userID,
			QuizID:      quizID,
			Score:       graded.Score,
			Answers:     datatypes.JSON(raw),
			SubmittedAt: s.now(),
		}})
		if err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}
		result = &SubmitResult{
			AttemptID: created[0].ID,
			Correct:   graded.Correct,
			Total:     graded.Total,
			Score:     graded.Score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveQuizScore(result.Score)
	return result, nil
}

func (s *quizService) ListAttempts(ctx context.Context, userID, quizID int64) ([]*types.Attempt, error) {
	found, err := s.quizzes.GetByIDs(ctx, nil, []int64{quizID})
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if len(found) == 0 {
		return nil, apierr.NotFound("Quiz")
	}
	out, err := s.attempts.ListByUserAndQuiz(ctx, nil, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}
