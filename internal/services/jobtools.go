package services

import (
	"strings"
	"unicode/utf8"
)

const resumeSummaryRunes = 140

var resumeTips = []string{
	"Use active verbs.",
	"Quantify achievements.",
	"Keep it concise (1-2 pages).",
}

type ResumePreview struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

type InterviewSimulation struct {
	Role      string   `json:"role"`
	Level     string   `json:"level"`
	Questions []string `json:"questions"`
}

// JobToolsService is static and deterministic; nothing is persisted.
type JobToolsService interface {
	PreviewResume(content string) ResumePreview
	SimulateInterview(role, level string) InterviewSimulation
}

type jobToolsService struct{}

func NewJobToolsService() JobToolsService { return jobToolsService{} }

func (jobToolsService) PreviewResume(content string) ResumePreview {
	summary := strings.TrimSpace(content)
	if utf8.RuneCountInString(summary) > resumeSummaryRunes {
		summary = string([]rune(summary)[:resumeSummaryRunes]) + "..."
	}
	tips := make([]string, len(resumeTips))
	copy(tips, resumeTips)
	return ResumePreview{Summary: summary, Tips: tips}
}

func (jobToolsService) SimulateInterview(role, level string) InterviewSimulation {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = "general"
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "junior"
	}

	questions := []string{
		"Tell me about yourself.",
		"Describe a challenging problem you solved.",
	}
	switch {
	case strings.Contains(role, "data"):
		questions = append(questions, "How would you handle missing data?", "Explain the difference between mean and median.")
	case strings.Contains(role, "marketing"):
		questions = append(questions, "How do you evaluate campaign ROI?", "What KPIs would you track for a brand launch?")
	case strings.Contains(role, "engineer"), strings.Contains(role, "developer"):
		questions = append(questions, "What is the time complexity of binary search?", "Explain REST vs. WebSocket.")
	}
	if len(questions) > 5 {
		questions = questions[:5]
	}
	return InterviewSimulation{Role: role, Level: level, Questions: questions}
}
