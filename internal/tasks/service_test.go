package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"task-analyzer-backend/internal/ai"
)

func TestRenderTasks_OneLinePerTaskInOrder(t *testing.T) {
	list := []Task{
		{Title: strp("B")},
		{Title: strp("A"), Completed: true, Priority: strp("high"), DueDate: strp("2024-01-01")},
		{Title: strp("B")},
		{},
	}

	got, err := RenderTasks(list)
	if err != nil {
		t.Fatalf("RenderTasks() error = %v", err)
	}
	want := []string{
		"- B | Chưa xong | Priority: medium | Deadline: no-deadline",
		"- A | Hoàn thành | Priority: high | Deadline: 2024-01-01",
		"- B | Chưa xong | Priority: medium | Deadline: no-deadline",
		"- (no title) | Chưa xong | Priority: medium | Deadline: no-deadline",
	}

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildPrompt_ContainsTaskBlock(t *testing.T) {
	prompt, err := BuildPrompt([]Task{{Title: strp("one")}, {Title: strp("two")}})
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	block := "- one | Chưa xong | Priority: medium | Deadline: no-deadline\n" +
		"- two | Chưa xong | Priority: medium | Deadline: no-deadline\n"
	if !strings.HasSuffix(prompt, "Danh sách:\n"+block) {
		t.Errorf("prompt does not end with task block:\n%s", prompt)
	}
	if strings.Count(prompt, "\n- one") != 1 || strings.Count(prompt, "\n- two") != 1 {
		t.Errorf("each task should appear exactly once:\n%s", prompt)
	}
}

func TestService_Analyze_Success(t *testing.T) {
	fake := &fakeCompleter{Text: "Summary..."}
	svc := NewService(fake, "gpt-test")

	got, err := svc.Analyze(context.Background(), []Task{{Title: strp("Write report")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Summary..." {
		t.Errorf("Analyze() = %q, want %q", got, "Summary...")
	}

	calls := fake.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(calls))
	}
	req := calls[0]
	if req.Model != "gpt-test" {
		t.Errorf("Model = %q, want %q", req.Model, "gpt-test")
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", req.Temperature)
	}
	if req.MaxTokens != 600 {
		t.Errorf("MaxTokens = %d, want 600", req.MaxTokens)
	}
	if req.System != ai.AnalystSystemPrompt {
		t.Errorf("System = %q, want analyst persona", req.System)
	}
	if !strings.Contains(req.Prompt, "- Write report | Chưa xong | Priority: medium | Deadline: no-deadline") {
		t.Errorf("prompt missing rendered task:\n%s", req.Prompt)
	}
}

func TestService_Analyze_EmptyList(t *testing.T) {
	fake := &fakeCompleter{Text: "unused"}
	svc := NewService(fake, "gpt-test")

	_, err := svc.Analyze(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if n := len(fake.calls()); n != 0 {
		t.Errorf("completer called %d times, want 0", n)
	}
}

func TestService_Analyze_NoContent(t *testing.T) {
	svc := NewService(&fakeCompleter{Err: ai.ErrNoContent}, "gpt-test")

	got, err := svc.Analyze(context.Background(), []Task{{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ai.NoResponse {
		t.Errorf("Analyze() = %q, want placeholder %q", got, ai.NoResponse)
	}
}

func TestService_Analyze_CompletionFailure(t *testing.T) {
	upstream := &ai.APIError{StatusCode: 429, Type: "insufficient_quota", Message: "quota exceeded"}
	fake := &fakeCompleter{Err: upstream}
	svc := NewService(fake, "gpt-test")

	_, err := svc.Analyze(context.Background(), []Task{{}})

	var ce *CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompletionError", err)
	}
	var apiErr *ai.APIError
	if !errors.As(err, &apiErr) || apiErr != upstream {
		t.Error("CompletionError should unwrap to the upstream error")
	}
	if n := len(fake.calls()); n != 1 {
		t.Errorf("completer called %d times, want 1 (no retries)", n)
	}
}

func TestService_Analyze_NullTaskFailsBeforeCompletion(t *testing.T) {
	fake := &fakeCompleter{Text: "unused"}
	svc := NewService(fake, "gpt-test")

	_, err := svc.Analyze(context.Background(), []Task{{Title: strp("a")}, {null: true}})

	var ce *CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompletionError", err)
	}
	if !strings.Contains(ce.Error(), "null") {
		t.Errorf("error = %q, should mention the null task", ce.Error())
	}
	if n := len(fake.calls()); n != 0 {
		t.Errorf("completer called %d times, want 0", n)
	}
}
