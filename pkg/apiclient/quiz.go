package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"learnhub_client/internal/model"
)

// QuizDefinition fetches a module's quiz: questions, max score and the
// optional time limit.
func (c *Client) QuizDefinition(ctx context.Context, moduleID string) (*model.QuizDefinition, error) {
	var out model.QuizDefinition
	path := fmt.Sprintf("/api/modules/%s/quiz", moduleID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartAttempt opens a new timed attempt on the module's quiz.
func (c *Client) StartAttempt(ctx context.Context, moduleID string) (*model.QuizAttempt, error) {
	var out model.QuizAttempt
	path := fmt.Sprintf("/api/modules/%s/quiz/attempts", moduleID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type submitRequest struct {
	Answers map[int]int `json:"answers"`
}

// SubmitAttempt posts the answer map, keyed by question index, and returns
// the graded result.
func (c *Client) SubmitAttempt(ctx context.Context, moduleID, attemptID string, answers map[int]int) (*model.QuizResult, error) {
	var out model.QuizResult
	path := fmt.Sprintf("/api/modules/%s/quiz/attempts/%s/submit", moduleID, attemptID)
	if err := c.do(ctx, http.MethodPost, path, submitRequest{Answers: answers}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
