package service

import (
	"time"

	"github.com/google/uuid"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
)

// submitGrace absorbs network latency on submissions that raced the
// deadline. The client's own countdown is advisory; this is the real
// enforcement.
const submitGrace = 5 * time.Second

type QuizService struct {
	QuizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo}
}

func (s *QuizService) Definition(moduleID string) (*model.QuizDefinition, error) {
	quiz, err := s.QuizRepo.FindQuiz(moduleID)
	if err != nil {
		return nil, err
	}
	definition := quiz.Definition
	return &definition, nil
}

// StartAttempt opens a fresh attempt for the user, displacing any live
// one on the same module. Timed quizzes get a server-declared expiry.
func (s *QuizService) StartAttempt(userID, moduleID string) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindQuiz(moduleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	attempt := &repository.StoredAttempt{
		QuizAttempt: model.QuizAttempt{
			AttemptID: uuid.NewString(),
			ModuleID:  moduleID,
			StartedAt: now,
		},
		UserID: userID,
	}
	if quiz.Definition.Timed() {
		expiry := now.Add(time.Duration(quiz.Definition.TimeLimitSeconds) * time.Second)
		attempt.ExpiresAt = &expiry
	}
	s.QuizRepo.ReplaceLiveAttempt(attempt)

	response := attempt.QuizAttempt
	definition := quiz.Definition
	response.Quiz = &definition
	return &response, nil
}

// SubmitAttempt grades the answer map against the stored key. Submissions
// past the expiry grace are rejected outright.
func (s *QuizService) SubmitAttempt(userID, moduleID, attemptID string, answers map[int]int) (*model.QuizResult, error) {
	attempt, err := s.QuizRepo.FindAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID || attempt.ModuleID != moduleID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Submitted {
		return nil, util.ErrAttemptSubmitted
	}
	if attempt.ExpiresAt != nil && time.Now().After(attempt.ExpiresAt.Add(submitGrace)) {
		return nil, util.ErrAttemptExpired
	}

	quiz, err := s.QuizRepo.FindQuiz(moduleID)
	if err != nil {
		return nil, err
	}

	score := 0
	for index, correct := range quiz.AnswerKey {
		if selected, ok := answers[index]; ok && selected == correct {
			score++
		}
	}

	// The submitted-state transition is atomic in the repository, so a
	// racing duplicate loses here even if both passed the checks above.
	if err := s.QuizRepo.MarkSubmitted(attemptID, score, time.Now().UTC()); err != nil {
		return nil, err
	}

	return &model.QuizResult{
		Score:    score,
		MaxScore: quiz.Definition.MaxScore,
	}, nil
}
