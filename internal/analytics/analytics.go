package analytics

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
)

const (
	EventAnalysisRequested = "analysis_requested"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
)

// Envelope is the client metadata attached to every event.
type Envelope struct {
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts envelope fields from request headers.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	if platform != "ios" && platform != "android" && platform != "web" {
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// Headers lists the request headers FromRequest reads, for CORS.
func Headers() []string {
	return []string{"X-Platform", "X-App-Version", "X-Device-Locale", "X-Session-Id"}
}

// Log writes one event record. Callers pass counts and timings only,
// never raw task text. Empty event names are dropped.
func Log(ctx context.Context, logger *slog.Logger, env Envelope, eventName string, props map[string]any) {
	if eventName == "" || logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("event", eventName),
		slog.String("platform", env.Platform),
	}
	if env.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", env.SessionID))
	}
	if env.AppVersion != "" {
		attrs = append(attrs, slog.String("app_version", env.AppVersion))
	}
	if env.DeviceLocale != "" {
		attrs = append(attrs, slog.String("device_locale", env.DeviceLocale))
	}

	// stable attribute order
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, props[k]))
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "analytics", attrs...)
}
