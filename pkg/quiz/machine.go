// Package quiz drives a module's timed assessment attempt: start, answer
// capture, countdown against an absolute deadline, auto-submit on expiry,
// result, retake. The countdown always recomputes remaining time from the
// deadline so drift and missed ticks cannot skew it. The deadline shown
// here is display robustness only; the server enforces its own.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"learnhub_client/internal/model"
	"learnhub_client/pkg/logger"
)

type State int

const (
	NotStarted State = iota
	Active
	Submitted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Active:
		return "active"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

var (
	ErrNotActive            = errors.New("no active attempt")
	ErrAlreadyStarted       = errors.New("attempt already active")
	ErrTimeExpired          = errors.New("attempt time limit reached")
	ErrUnknownQuestion      = errors.New("unknown question index")
	ErrOptionOutOfRange     = errors.New("selected option out of range")
	ErrConfirmationRequired = errors.New("manual submit requires confirmation")
	ErrIncomplete           = errors.New("not every question has an answer")
	ErrSubmitInFlight       = errors.New("a submit is already in progress")
	ErrNoResult             = errors.New("no submitted result to retake from")
	ErrNoQuiz               = errors.New("quiz definition unavailable")
	ErrClosed               = errors.New("machine is closed")
)

// API is the slice of the REST client the machine needs.
type API interface {
	QuizDefinition(ctx context.Context, moduleID string) (*model.QuizDefinition, error)
	StartAttempt(ctx context.Context, moduleID string) (*model.QuizAttempt, error)
	SubmitAttempt(ctx context.Context, moduleID, attemptID string, answers map[int]int) (*model.QuizResult, error)
}

const defaultTickInterval = 250 * time.Millisecond

type Machine struct {
	api       API
	moduleID  string
	now       func() time.Time
	tickEvery time.Duration
	onChange  func()

	mu         sync.Mutex
	state      State
	quiz       *model.QuizDefinition
	attemptID  string
	startedAt  time.Time
	deadline   time.Time
	remaining  time.Duration
	answers    map[int]int
	result     *model.QuizResult
	autoFired  bool
	submitting bool
	starting   bool
	closed     bool
	generation uint64

	cancelTicker context.CancelFunc
}

type Option func(*Machine)

// WithClock replaces the wall clock; tests drive simulated time with it.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) {
		m.tickEvery = d
	}
}

// WithListener registers a callback invoked after every observable state
// change, so a view layer can re-render.
func WithListener(fn func()) Option {
	return func(m *Machine) {
		m.onChange = fn
	}
}

func NewMachine(api API, moduleID string, opts ...Option) *Machine {
	m := &Machine{
		api:       api,
		moduleID:  moduleID,
		now:       time.Now,
		tickEvery: defaultTickInterval,
		answers:   make(map[int]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadQuiz fetches the quiz definition for display before an attempt is
// started.
func (m *Machine) LoadQuiz(ctx context.Context) (*model.QuizDefinition, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	gen := m.generation
	m.mu.Unlock()

	def, err := m.api.QuizDefinition(ctx, m.moduleID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.generation != gen {
		return nil, ErrClosed
	}
	m.quiz = def
	return def, nil
}

// Start opens a new attempt. The deadline prefers the server-declared
// expiry; when the module has a time limit and the server omitted one, a
// local fallback of receipt time + limit stands in, and failing even that,
// startedAt + limit.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state != NotStarted || m.starting {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.starting = true
	gen := m.generation
	m.mu.Unlock()

	attempt, err := m.api.StartAttempt(ctx, m.moduleID)

	m.mu.Lock()
	if m.closed || m.generation != gen {
		m.mu.Unlock()
		return ErrClosed
	}
	m.starting = false
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("start attempt: %w", err)
	}

	quiz := attempt.Quiz
	if quiz == nil {
		quiz = m.quiz
	}
	if quiz == nil {
		m.mu.Unlock()
		return ErrNoQuiz
	}

	receivedAt := m.now()
	m.quiz = quiz
	m.attemptID = attempt.AttemptID
	m.startedAt = attempt.StartedAt
	m.deadline = computeDeadline(attempt, quiz.TimeLimitSeconds, receivedAt)
	m.answers = make(map[int]int)
	m.result = nil
	m.autoFired = false
	m.state = Active
	if !m.deadline.IsZero() {
		m.remaining = floorZero(m.deadline.Sub(receivedAt))
		m.startTickerLocked()
	}
	listener := m.onChange
	m.mu.Unlock()

	notify(listener)
	return nil
}

func computeDeadline(attempt *model.QuizAttempt, timeLimitSeconds int, receivedAt time.Time) time.Time {
	if attempt.ExpiresAt != nil && !attempt.ExpiresAt.IsZero() {
		return *attempt.ExpiresAt
	}
	if timeLimitSeconds <= 0 {
		return time.Time{}
	}
	limit := time.Duration(timeLimitSeconds) * time.Second
	if !receivedAt.IsZero() {
		return receivedAt.Add(limit)
	}
	if !attempt.StartedAt.IsZero() {
		return attempt.StartedAt.Add(limit)
	}
	return time.Time{}
}

// SelectAnswer records (or overwrites) the chosen option for a question.
// Selection is refused the moment the countdown hits zero, even while the
// auto-submit call is still on the wire.
func (m *Machine) SelectAnswer(questionIndex, optionIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.state != Active {
		return ErrNotActive
	}
	if m.expiredLocked() {
		return ErrTimeExpired
	}
	var question *model.QuizQuestion
	for i := range m.quiz.Questions {
		if m.quiz.Questions[i].Index == questionIndex {
			question = &m.quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return ErrUnknownQuestion
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return ErrOptionOutOfRange
	}
	m.answers[questionIndex] = optionIndex
	return nil
}

// Submit grades the attempt. Manual submits require an accepted
// confirmation and a complete answer sheet (unless the timer already ran
// out). A failed submit leaves the attempt active with its answers intact.
func (m *Machine) Submit(ctx context.Context, confirmed bool) (*model.QuizResult, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	return m.submit(ctx, false)
}

func (m *Machine) submit(ctx context.Context, auto bool) (*model.QuizResult, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if m.state != Active {
		m.mu.Unlock()
		return nil, ErrNotActive
	}
	if m.submitting {
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if !auto && !m.canSubmitLocked() {
		m.mu.Unlock()
		return nil, ErrIncomplete
	}
	m.submitting = true
	gen := m.generation
	moduleID, attemptID := m.moduleID, m.attemptID
	answers := make(map[int]int, len(m.answers))
	for k, v := range m.answers {
		answers[k] = v
	}
	m.mu.Unlock()

	result, err := m.api.SubmitAttempt(ctx, moduleID, attemptID, answers)

	m.mu.Lock()
	if m.closed || m.generation != gen {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.submitting = false
	if err != nil {
		// The attempt is not lost; the caller may retry.
		m.mu.Unlock()
		return nil, fmt.Errorf("submit attempt: %w", err)
	}
	m.state = Submitted
	m.result = result
	m.stopTickerLocked()
	listener := m.onChange
	m.mu.Unlock()

	notify(listener)
	return result, nil
}

// Retake discards the submitted result and opens a fresh attempt.
func (m *Machine) Retake(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state != Submitted {
		m.mu.Unlock()
		return ErrNoResult
	}
	m.resetLocked()
	m.mu.Unlock()
	return m.Start(ctx)
}

// Close abandons the machine: the ticker stops and any in-flight response
// is discarded instead of mutating state after teardown.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.generation++
	m.stopTickerLocked()
}

func (m *Machine) resetLocked() {
	m.state = NotStarted
	m.attemptID = ""
	m.startedAt = time.Time{}
	m.deadline = time.Time{}
	m.remaining = 0
	m.answers = make(map[int]int)
	m.result = nil
	m.autoFired = false
	m.submitting = false
	m.generation++
	m.stopTickerLocked()
}

func (m *Machine) startTickerLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTicker = cancel
	go m.run(ctx)
}

func (m *Machine) stopTickerLocked() {
	if m.cancelTicker != nil {
		m.cancelTicker()
		m.cancelTicker = nil
	}
}

func (m *Machine) run(ctx context.Context) {
	ticker := time.NewTicker(m.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick recomputes remaining time from the absolute deadline and fires the
// auto-submit latch the first time it reaches zero.
func (m *Machine) tick() {
	m.mu.Lock()
	if m.state != Active || m.deadline.IsZero() {
		m.mu.Unlock()
		return
	}
	m.remaining = floorZero(m.deadline.Sub(m.now()))
	fire := m.remaining == 0 && !m.autoFired && !m.submitting
	if fire {
		m.autoFired = true
	}
	listener := m.onChange
	m.mu.Unlock()

	notify(listener)
	if fire {
		go m.autoSubmit()
	}
}

func (m *Machine) autoSubmit() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := m.submit(ctx, true); err != nil && !errors.Is(err, ErrClosed) {
		// Leave the attempt active; the learner can still submit manually.
		logger.Log.Warn("auto-submit failed",
			zap.String("module", m.moduleID),
			zap.Error(err))
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Quiz() *model.QuizDefinition {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quiz
}

func (m *Machine) Result() *model.QuizResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

func (m *Machine) Answers() map[int]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	answers := make(map[int]int, len(m.answers))
	for k, v := range m.answers {
		answers[k] = v
	}
	return answers
}

// Remaining recomputes the time left from the deadline. Never negative;
// zero for untimed attempts.
func (m *Machine) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Active || m.deadline.IsZero() {
		return 0
	}
	return floorZero(m.deadline.Sub(m.now()))
}

// CanSubmit reports whether the manual submit control should be enabled:
// every question answered, or the timer already at zero.
func (m *Machine) CanSubmit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Active && m.canSubmitLocked()
}

// Locked reports whether the hosting view must block navigation away from
// the attempt. Released the instant a result is obtained.
func (m *Machine) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Active
}

func (m *Machine) canSubmitLocked() bool {
	if m.quiz == nil {
		return false
	}
	if m.expiredLocked() {
		return true
	}
	for _, q := range m.quiz.Questions {
		if _, ok := m.answers[q.Index]; !ok {
			return false
		}
	}
	return true
}

func (m *Machine) expiredLocked() bool {
	return !m.deadline.IsZero() && floorZero(m.deadline.Sub(m.now())) == 0
}

func floorZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
