package model

import "time"

type SimulationScenario struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Persona     string `json:"persona"`
}

type SimulationSession struct {
	ID         string    `json:"id"`
	ScenarioID string    `json:"scenarioId"`
	StartedAt  time.Time `json:"startedAt"`
	Completed  bool      `json:"completed"`
}

type SimulationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	SimulationRoleUser      = "user"
	SimulationRoleAssistant = "assistant"
)
