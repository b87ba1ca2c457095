package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type QuizHandler struct {
	svc services.QuizService
}

func NewQuizHandler(svc services.QuizService) *QuizHandler {
	return &QuizHandler{svc: svc}
}

type questionOut struct {
	ID      int64  `json:"id"`
	Prompt  string `json:"prompt"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// POST /quizzes/:id/start (id is the module id)
func (h *QuizHandler) Start(c *gin.Context) {
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	session, err := h.svc.StartForModule(c.Request.Context(), moduleID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	questions := make([]questionOut, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, questionOut{
			ID:      q.ID,
			Prompt:  q.Prompt,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		})
	}
	response.RespondOK(c, gin.H{
		"id":        session.Quiz.ID,
		"title":     session.Quiz.Title,
		"questions": questions,
	})
}

// POST /quizzes/:id/submit (id is the quiz id)
// body: { "answers": { "<question_id>": "A" } }
func (h *QuizHandler) Submit(c *gin.Context) {
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if !bindJSON(c, &req) {
		return
	}
	answers := make(map[int64]string, len(req.Answers))
	for k, v := range req.Answers {
		qid, err := strconv.ParseInt(strings.TrimSpace(k), 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_answers", errInvalidID("question id "+strconv.Quote(k)))
			return
		}
		answers[qid] = v
	}

	res, err := h.svc.Submit(c.Request.Context(), currentUserID(c), quizID, answers)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"score":      res.Score,
		"attempt_id": res.AttemptID,
		"correct":    res.Correct,
		"total":      res.Total,
	})
}

// GET /quizzes/:id/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	attempts, err := h.svc.ListAttempts(c.Request.Context(), currentUserID(c), quizID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, attempts)
}
