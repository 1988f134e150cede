// Package trace provides the leveled observability hook used by the
// grade-cell engine. Engine code emits events; callers decide whether and
// where they are written.
package trace

import (
	"context"
	"io"
	"log/slog"
	"sort"
)

// LevelTrace sits below slog.LevelDebug and is used for per-row events.
const LevelTrace = slog.Level(-8)

// Event names emitted by the engine.
const (
	WorkbookCacheHit   = "workbook_cache_hit"
	WorkbookLoaded     = "workbook_loaded"
	WorkbookEvicted    = "workbook_evicted"
	HeaderBlockMatched = "header_block_matched"
	HeaderBlockSkipped = "header_block_skipped"
	ActivityFound      = "activity_found"
	StudentRowScanned  = "student_row_scanned"
	StudentMatchFound  = "student_match_found"
	TermIndexFallback  = "term_index_fallback"
	RosterRequest      = "roster_request"
	PlacementPlanned   = "placement_planned"
)

// Event is a single engine observation.
type Event struct {
	Name   string
	Level  slog.Level
	Fields map[string]any
}

// Observer receives engine events.
type Observer interface {
	Observe(event Event)
}

// Noop ignores all events.
type Noop struct{}

func (Noop) Observe(Event) {}

// OrNoop returns o, or Noop when o is nil.
func OrNoop(o Observer) Observer {
	if o == nil {
		return Noop{}
	}
	return o
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes events at or above level to w as slog text records.
func NewLogObserver(w io.Writer, level slog.Level) Observer {
	if w == nil {
		return Noop{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: renameTraceLevel,
		})),
	}
}

func (o *logObserver) Observe(event Event) {
	ctx := context.Background()
	if !o.logger.Enabled(ctx, event.Level) {
		return
	}
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}
	o.logger.Log(ctx, event.Level, event.Name, attrs...)
}

func renameTraceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// Recorder keeps every event in memory. Tests use it to assert on the
// engine's observable steps.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Observe(event Event) {
	r.Events = append(r.Events, event)
}

// Names returns the recorded event names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Name
	}
	return names
}

// Count returns how many events named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, e := range r.Events {
		if e.Name == name {
			n++
		}
	}
	return n
}
