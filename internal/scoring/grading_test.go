package scoring

import "testing"

func TestGrade(t *testing.T) {
	key := map[int64]string{1: "A", 2: "B"}

	cases := []struct {
		name       string
		submission map[int64]string
		correct    int
		score      float64
	}{
		{name: "normalized and unknown ids", submission: map[int64]string{1: "a ", 2: "B", 3: "X"}, correct: 2, score: 100},
		{name: "empty submission", submission: map[int64]string{}, correct: 0, score: 0},
		{name: "nil submission", submission: nil, correct: 0, score: 0},
		{name: "partial wrong", submission: map[int64]string{1: "B"}, correct: 0, score: 0},
		{name: "partial right", submission: map[int64]string{2: "  b\t"}, correct: 1, score: 50},
		{name: "only unknown ids", submission: map[int64]string{9: "A", 10: "B"}, correct: 0, score: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(key, tc.submission)
			if got.Correct != tc.correct || got.Total != 2 || got.Score != tc.score {
				t.Fatalf("Grade = %+v, want correct=%d total=2 score=%.2f", got, tc.correct, tc.score)
			}
		})
	}
}

func TestGradeRoundsToTwoDecimals(t *testing.T) {
	key := map[int64]string{1: "A", 2: "B", 3: "C"}
	got := Grade(key, map[int64]string{1: "A"})
	if got.Score != 33.33 {
		t.Fatalf("1/3: got %v want 33.33", got.Score)
	}
	got = Grade(key, map[int64]string{1: "A", 2: "B"})
	if got.Score != 66.67 {
		t.Fatalf("2/3: got %v want 66.67", got.Score)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	got := Grade(map[int64]string{}, map[int64]string{1: "A"})
	if got.Score != 0 || got.Total != 0 {
		t.Fatalf("empty key: got %+v", got)
	}
}

func TestGradeKeyNormalization(t *testing.T) {
	got := Grade(map[int64]string{1: " c"}, map[int64]string{1: "C "})
	if got.Score != 100 {
		t.Fatalf("key and answer should both be normalized, got %+v", got)
	}
}
