package repository

import (
	"sync"
	"time"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
)

// StoredQuiz keeps the quiz definition together with its answer key. The
// key never leaves the repository layer.
type StoredQuiz struct {
	Definition model.QuizDefinition
	AnswerKey  map[int]int
}

// StoredAttempt is one user's live or submitted attempt on a module quiz.
type StoredAttempt struct {
	model.QuizAttempt
	UserID      string
	Submitted   bool
	SubmittedAt *time.Time
	Score       int
}

type QuizRepository struct {
	mu       sync.RWMutex
	quizzes  map[string]*StoredQuiz    // module id -> quiz
	attempts map[string]*StoredAttempt // attempt id -> attempt
	live     map[string]string         // user id + module id -> attempt id
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{
		quizzes:  make(map[string]*StoredQuiz),
		attempts: make(map[string]*StoredAttempt),
		live:     make(map[string]string),
	}
}

func (r *QuizRepository) AddQuiz(quiz *StoredQuiz) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.Definition.ModuleID] = quiz
}

func (r *QuizRepository) FindQuiz(moduleID string) (*StoredQuiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[moduleID]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

// ReplaceLiveAttempt records a new attempt as the single live one for the
// (user, module) pair, displacing any previous attempt.
func (r *QuizRepository) ReplaceLiveAttempt(attempt *StoredAttempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attempt.UserID + "/" + attempt.ModuleID
	if previous, ok := r.live[key]; ok {
		delete(r.attempts, previous)
	}
	r.attempts[attempt.AttemptID] = cloneAttempt(attempt)
	r.live[key] = attempt.AttemptID
}

func (r *QuizRepository) FindAttempt(attemptID string) (*StoredAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attempt, ok := r.attempts[attemptID]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	return cloneAttempt(attempt), nil
}

func (r *QuizRepository) UpdateAttempt(attempt *StoredAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attempts[attempt.AttemptID]; !ok {
		return util.ErrAttemptNotFound
	}
	r.attempts[attempt.AttemptID] = cloneAttempt(attempt)
	return nil
}

// MarkSubmitted transitions an attempt to submitted. The check-and-set
// runs under the lock so two racing submissions cannot both be graded.
func (r *QuizRepository) MarkSubmitted(attemptID string, score int, submittedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[attemptID]
	if !ok {
		return util.ErrAttemptNotFound
	}
	if attempt.Submitted {
		return util.ErrAttemptSubmitted
	}
	attempt.Submitted = true
	attempt.SubmittedAt = &submittedAt
	attempt.Score = score
	return nil
}

// cloneAttempt keeps callers from mutating shared state through returned
// pointers.
func cloneAttempt(attempt *StoredAttempt) *StoredAttempt {
	clone := *attempt
	if attempt.ExpiresAt != nil {
		expiry := *attempt.ExpiresAt
		clone.ExpiresAt = &expiry
	}
	if attempt.SubmittedAt != nil {
		at := *attempt.SubmittedAt
		clone.SubmittedAt = &at
	}
	return &clone
}
