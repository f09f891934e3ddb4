package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
)

type ChatService struct {
	ChatRepo *repository.ChatRepository
}

func NewChatService(chatRepo *repository.ChatRepository) *ChatService {
	return &ChatService{ChatRepo: chatRepo}
}

func (s *ChatService) Scenarios() []model.SimulationScenario {
	return s.ChatRepo.ListScenarios()
}

func (s *ChatService) StartSession(userID, scenarioID string) (*model.SimulationSession, error) {
	if _, err := s.ChatRepo.FindScenario(scenarioID); err != nil {
		return nil, err
	}
	session := &repository.StoredSession{
		SimulationSession: model.SimulationSession{
			ID:         uuid.NewString(),
			ScenarioID: scenarioID,
			StartedAt:  time.Now().UTC(),
		},
		UserID: userID,
	}
	s.ChatRepo.SaveSession(session)
	response := session.SimulationSession
	return &response, nil
}

// SendMessage records the learner's message and produces a canned
// assistant turn in the scenario's persona. Canned is all a stub needs;
// the real backend runs the actual simulation.
func (s *ChatService) SendMessage(userID, sessionID, content string) (*model.SimulationMessage, error) {
	session, err := s.ChatRepo.FindSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	scenario, err := s.ChatRepo.FindScenario(session.ScenarioID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userTurn := model.SimulationMessage{
		Role:      model.SimulationRoleUser,
		Content:   content,
		Timestamp: now,
	}
	reply := model.SimulationMessage{
		Role:      model.SimulationRoleAssistant,
		Content:   fmt.Sprintf("[%s] Noted: %q. Tell me more about how you would proceed.", scenario.Persona, content),
		Timestamp: now,
	}
	if err := s.ChatRepo.AppendMessages(sessionID, userTurn, reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

func (s *ChatService) CompleteSession(userID, sessionID string) (*model.SimulationSession, error) {
	session, err := s.ChatRepo.FindSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	completed, err := s.ChatRepo.MarkCompleted(sessionID)
	if err != nil {
		return nil, err
	}
	response := completed.SimulationSession
	return &response, nil
}
