package core

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"
)

// patchOperationPrefix marks operations observed around a single patch family.
const patchOperationPrefix = "patch."

// SpanRecord is one finished span written by JSONTracer. Patch is set for
// spans around a patch family and empty for load and unload.
type SpanRecord struct {
	Session    string    `json:"session,omitempty"`
	Seq        int       `json:"seq"`
	Operation  string    `json:"operation"`
	Patch      string    `json:"patch,omitempty"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	Started    time.Time `json:"started"`
	DurationMS float64   `json:"duration_ms"`
}

// JSONTracer writes each finished span as a JSON line. Spans are numbered in
// the order they end, so a patch span precedes the load span wrapping it.
type JSONTracer struct {
	mu      sync.Mutex
	enc     *json.Encoder
	clock   Clock
	session string
	records []SpanRecord
}

// NewJSONTracer returns a tracer writing to w. With a nil writer spans are
// only kept in memory.
func NewJSONTracer(w io.Writer) *JSONTracer {
	t := &JSONTracer{clock: systemClock{}}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// ForSession stamps later spans with the session ID.
func (t *JSONTracer) ForSession(id string) *JSONTracer {
	t.mu.Lock()
	t.session = id
	t.mu.Unlock()
	return t
}

// WithClock replaces the clock used to time spans.
func (t *JSONTracer) WithClock(clock Clock) *JSONTracer {
	if clock != nil {
		t.mu.Lock()
		t.clock = clock
		t.mu.Unlock()
	}
	return t
}

// Records returns the spans finished so far.
func (t *JSONTracer) Records() []SpanRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SpanRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Start implements Tracer.
func (t *JSONTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	t.mu.Lock()
	started := t.clock.Now()
	t.mu.Unlock()
	return ctx, &jsonSpan{tracer: t, operation: operation, started: started}
}

func (t *JSONTracer) finish(operation string, started time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := SpanRecord{
		Session:    t.session,
		Seq:        len(t.records) + 1,
		Operation:  operation,
		Patch:      strings.TrimPrefix(operation, patchOperationPrefix),
		OK:         err == nil,
		Started:    started,
		DurationMS: float64(t.clock.Now().Sub(started)) / float64(time.Millisecond),
	}
	if !strings.HasPrefix(operation, patchOperationPrefix) {
		rec.Patch = ""
	}
	if err != nil {
		rec.Error = err.Error()
	}
	t.records = append(t.records, rec)
	if t.enc != nil {
		_ = t.enc.Encode(rec)
	}
}

type jsonSpan struct {
	tracer    *JSONTracer
	operation string
	started   time.Time
	once      sync.Once
}

func (s *jsonSpan) End(err error) {
	s.once.Do(func() { s.tracer.finish(s.operation, s.started, err) })
}
