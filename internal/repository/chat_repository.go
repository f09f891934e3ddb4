package repository

import (
	"sync"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
)

type StoredSession struct {
	model.SimulationSession
	UserID   string
	Messages []model.SimulationMessage
}

type ChatRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*model.SimulationScenario
	sessions  map[string]*StoredSession
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{
		scenarios: make(map[string]*model.SimulationScenario),
		sessions:  make(map[string]*StoredSession),
	}
}

func (r *ChatRepository) AddScenario(scenario *model.SimulationScenario) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[scenario.ID] = scenario
}

func (r *ChatRepository) FindScenario(id string) (*model.SimulationScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scenario, ok := r.scenarios[id]
	if !ok {
		return nil, util.ErrScenarioNotFound
	}
	return scenario, nil
}

func (r *ChatRepository) ListScenarios() []model.SimulationScenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scenarios := make([]model.SimulationScenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		scenarios = append(scenarios, *s)
	}
	return scenarios
}

func (r *ChatRepository) SaveSession(session *StoredSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
}

func (r *ChatRepository) FindSession(id string) (*StoredSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// AppendMessages adds turns to a session. The completed check runs under
// the lock so no message can land after completion.
func (r *ChatRepository) AppendMessages(sessionID string, messages ...model.SimulationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return util.ErrSessionNotFound
	}
	if session.Completed {
		return util.ErrSessionCompleted
	}
	session.Messages = append(session.Messages, messages...)
	return nil
}

// MarkCompleted closes a session and returns its final state. Idempotent.
func (r *ChatRepository) MarkCompleted(sessionID string) (*StoredSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	session.Completed = true
	return cloneSession(session), nil
}

// cloneSession keeps callers from mutating shared state through returned
// pointers.
func cloneSession(session *StoredSession) *StoredSession {
	clone := *session
	if session.Messages != nil {
		clone.Messages = append([]model.SimulationMessage(nil), session.Messages...)
	}
	return &clone
}
