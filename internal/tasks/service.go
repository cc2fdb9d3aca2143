package tasks

import (
	"context"
	"errors"
	"fmt"

	"task-analyzer-backend/internal/ai"
)

// Sampling parameters are fixed for every analysis.
const (
	Temperature = 0.7
	MaxTokens   = 600
)

// ErrInvalidInput means the task list was missing or empty.
var ErrInvalidInput = errors.New("no tasks provided")

// CompletionError wraps any failure of the completion call.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	if e.Err == nil {
		return "completion request failed"
	}
	return e.Err.Error()
}

func (e *CompletionError) Unwrap() error { return e.Err }

// Service turns a task list into an analysis using a Completer.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	completer ai.Completer
	model     string
}

func NewService(completer ai.Completer, model string) *Service {
	return &Service{completer: completer, model: model}
}

// RenderTasks returns one formatted line per task, in input order.
// A null element has no fields to read and fails the whole list.
func RenderTasks(list []Task) ([]string, error) {
	lines := make([]string, 0, len(list))
	for i, t := range list {
		if t.null {
			return nil, fmt.Errorf("task %d is null: cannot read properties of null (reading 'title')", i)
		}
		lines = append(lines, ai.BuildTaskLine(t.Title, t.Completed, t.Priority, t.DueDate))
	}
	return lines, nil
}

// BuildPrompt renders the task list into the user prompt.
func BuildPrompt(list []Task) (string, error) {
	lines, err := RenderTasks(list)
	if err != nil {
		return "", err
	}
	return ai.BuildAnalysisPrompt(lines), nil
}

// Analyze makes at most one completion call, none if the prompt cannot be
// built. An answer without content yields ai.NoResponse.
func (s *Service) Analyze(ctx context.Context, list []Task) (string, error) {
	if len(list) == 0 {
		return "", ErrInvalidInput
	}

	prompt, err := BuildPrompt(list)
	if err != nil {
		return "", &CompletionError{Err: err}
	}

	text, err := s.completer.Complete(ctx, ai.CompletionRequest{
		Model:       s.model,
		System:      ai.AnalystSystemPrompt,
		Prompt:      prompt,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if errors.Is(err, ai.ErrNoContent) {
		return ai.NoResponse, nil
	}
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	return text, nil
}
