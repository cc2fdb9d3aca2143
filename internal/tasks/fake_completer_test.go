package tasks

import (
	"context"
	"sync"

	"task-analyzer-backend/internal/ai"
)

// fakeCompleter records requests and returns canned answers.
type fakeCompleter struct {
	mu       sync.Mutex
	requests []ai.CompletionRequest
	ctxErrs  []error

	Text string
	Err  error
}

func (f *fakeCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.Text, f.Err
}

func (f *fakeCompleter) calls() []ai.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ai.CompletionRequest(nil), f.requests...)
}
