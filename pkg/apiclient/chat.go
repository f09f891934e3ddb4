package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"learnhub_client/internal/model"
)

// The four chat-simulation calls the client issues. Anything richer than
// this lives on the backend.

func (c *Client) Scenarios(ctx context.Context) ([]model.SimulationScenario, error) {
	var out []model.SimulationScenario
	if err := c.do(ctx, http.MethodGet, "/api/simulations/scenarios", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type startSimulationRequest struct {
	ScenarioID string `json:"scenarioId"`
}

func (c *Client) StartSimulation(ctx context.Context, scenarioID string) (*model.SimulationSession, error) {
	var out model.SimulationSession
	if err := c.do(ctx, http.MethodPost, "/api/simulations/sessions", startSimulationRequest{ScenarioID: scenarioID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type simulationMessageRequest struct {
	Content string `json:"content"`
}

// SendSimulationMessage posts the learner's message and returns the
// assistant's reply.
func (c *Client) SendSimulationMessage(ctx context.Context, sessionID, content string) (*model.SimulationMessage, error) {
	var out model.SimulationMessage
	path := fmt.Sprintf("/api/simulations/sessions/%s/messages", sessionID)
	if err := c.do(ctx, http.MethodPost, path, simulationMessageRequest{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteSimulation(ctx context.Context, sessionID string) (*model.SimulationSession, error) {
	var out model.SimulationSession
	path := fmt.Sprintf("/api/simulations/sessions/%s/complete", sessionID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
