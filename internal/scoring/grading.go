// Package scoring holds the pure quiz-grading and lesson-progress rules.
package scoring

import (
	"math"
	"strings"
)

// GradeResult is the outcome of grading one submission against a quiz's answer key.
type GradeResult struct {
	Correct int
	Total   int
	Score   float64
}

// Grade counts submitted answers whose normalized option matches the key. Unknown question ids are
// ignored and unanswered questions count as wrong; the denominator is always the size of the key.
func Grade(key map[int64]string, submission map[int64]string) GradeResult {
	correct := 0
	for questionID, submitted := range submission {
		want, ok := key[questionID]
		if !ok {
			continue
		}
		if normalizeOption(submitted) == normalizeOption(want) {
			correct++
		}
	}
	total := len(key)
	return GradeResult{
		Correct: correct,
		Total:   total,
		Score:   Round2(float64(correct) / float64(max(1, total)) * 100),
	}
}

func normalizeOption(opt string) string {
	return strings.ToUpper(strings.TrimSpace(opt))
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
