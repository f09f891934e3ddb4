package model

import "time"

type QuizQuestion struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type QuizDefinition struct {
	ModuleID         string         `json:"moduleId"`
	Title            string         `json:"title"`
	Questions        []QuizQuestion `json:"questions"`
	MaxScore         int            `json:"maxScore"`
	TimeLimitSeconds int            `json:"timeLimitSeconds,omitempty"`
}

func (q *QuizDefinition) Timed() bool {
	return q != nil && q.TimeLimitSeconds > 0
}

type QuizAttempt struct {
	AttemptID string          `json:"attemptId"`
	ModuleID  string          `json:"moduleId"`
	StartedAt time.Time       `json:"startedAt"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
	Quiz      *QuizDefinition `json:"quiz,omitempty"`
}

type QuizResult struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
}
