package observability

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger. Successful events are logged at
// debug level and failures at warn.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks writing to logger, or to log.Default() when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger.WithPrefix("obs")}
}

// Install registers h for every event category.
func (h *LogHooks) Install() {
	Set(Hooks{Pipeline: h, Cache: h, HTTP: h})
}

func (h *LogHooks) OnStageStart(_ context.Context, ev Event) {
	h.Logger.Debug(string(ev.Stage)+" start", "job", ev.JobID, "with", ev.Detail)
}

func (h *LogHooks) OnStageDone(_ context.Context, ev Event) {
	if ev.Err != nil {
		h.Logger.Warn(string(ev.Stage)+" failed", "job", ev.JobID, "with", ev.Detail, "duration", ev.Duration, "err", ev.Err)
		return
	}
	h.Logger.Debug(string(ev.Stage)+" done", "job", ev.JobID, "with", ev.Detail, "nodes", ev.Nodes, "duration", ev.Duration)
}

func (h *LogHooks) OnFallback(_ context.Context, jobID, requested, used string) {
	h.Logger.Debug("layout fallback", "job", jobID, "requested", requested, "used", used)
}

func (h *LogHooks) OnStale(_ context.Context, jobID, kind string, err error) {
	h.Logger.Warn("serving stale layout", "job", jobID, "kind", kind, "err", err)
}

func (h *LogHooks) OnCacheLookup(_ context.Context, stage Stage, hit bool) {
	if hit {
		h.Logger.Debug("cache hit", "stage", stage)
	} else {
		h.Logger.Debug("cache miss", "stage", stage)
	}
}

func (h *LogHooks) OnCacheStore(_ context.Context, stage Stage, size int) {
	h.Logger.Debug("cache store", "stage", stage, "bytes", size)
}

func (h *LogHooks) OnRoundTrip(_ context.Context, rt RoundTrip) {
	switch {
	case rt.Err != nil:
		h.Logger.Warn("http error", "method", rt.Method, "host", rt.Host, "path", rt.Path, "err", rt.Err)
	case rt.Status >= 400:
		h.Logger.Warn("http response", "method", rt.Method, "host", rt.Host, "path", rt.Path, "status", rt.Status, "duration", rt.Duration)
	default:
		h.Logger.Debug("http response", "method", rt.Method, "host", rt.Host, "path", rt.Path, "status", rt.Status, "duration", rt.Duration)
	}
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
