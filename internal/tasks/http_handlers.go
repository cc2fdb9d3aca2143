package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"task-analyzer-backend/internal/analytics"
)

const (
	msgNoTasks         = "No tasks provided"
	msgAIRequestFailed = "AI request failed"
	msgInvalidJSON     = "invalid json"
	msgBodyTooLarge    = "request body too large"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeTasks returns the task list from a request body, or ErrInvalidInput
// when "tasks" is absent, not an array, or empty.
// The key match is exact: "Tasks" or "TASKS" is not "tasks".
func decodeTasks(body []byte) ([]Task, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// valid JSON that isn't an object has no tasks either
		return nil, ErrInvalidInput
	}

	raw := bytes.TrimSpace(fields["tasks"])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidInput
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return nil, ErrInvalidInput
	}

	list := make([]Task, len(elems))
	for i, e := range elems {
		if err := list[i].UnmarshalJSON(e); err != nil {
			return nil, ErrInvalidInput
		}
	}
	return list, nil
}

// isJSONContent reports whether the request declares a JSON body. Other
// bodies are left unread and count as empty.
func isJSONContent(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func countCompleted(list []Task) int {
	n := 0
	for _, t := range list {
		if t.Completed {
			n++
		}
	}
	return n
}

// AnalyzeTasksHandler serves POST /api/analyzeTasks.
func AnalyzeTasksHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if !isJSONContent(r) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNoTasks})
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: msgBodyTooLarge})
				return
			}
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
			return
		}

		// an empty body is treated like {}
		if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
			return
		}

		list, err := decodeTasks(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNoTasks})
			return
		}

		// The upstream call outlives a disconnecting client.
		ctx := context.WithoutCancel(r.Context())
		env := analytics.FromRequest(r)
		analytics.Log(ctx, logger, env, analytics.EventAnalysisRequested, map[string]any{
			"task_count":      len(list),
			"completed_count": countCompleted(list),
		})

		start := time.Now()
		analysis, err := svc.Analyze(ctx, list)
		elapsed := time.Since(start).Milliseconds()

		if err != nil {
			analytics.Log(ctx, logger, env, analytics.EventAnalysisFailed, map[string]any{"duration_ms": elapsed})

			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNoTasks})
				return
			}

			logger.Error("AI backend error", "err", err)
			details := err.Error()
			var ce *CompletionError
			if errors.As(err, &ce) && ce.Err != nil {
				details = ce.Err.Error()
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   msgAIRequestFailed,
				"details": details,
			})
			return
		}

		analytics.Log(ctx, logger, env, analytics.EventAnalysisCompleted, map[string]any{"duration_ms": elapsed})
		writeJSON(w, http.StatusOK, AnalyzeResponse{Analysis: analysis})
	}
}
