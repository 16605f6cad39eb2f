package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoopObservability(_ *testing.T) {
	logger := noopLogger{}
	logger.Debug("debug", "key", "value")
	logger.Info("info", "key", "value")
	logger.Warn("warn", "key", "value")
	logger.Error("error", "key", "value")

	noopMetrics{}.Observe(context.Background(), "op", true, time.Second)
	_, span := noopTracer{}.Start(context.Background(), "op")
	span.End(errors.New("ignored"))
}

func TestJSONTracerWritesSpanRecords(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := ClockFunc(func() time.Time {
		now = now.Add(2 * time.Millisecond)
		return now
	})
	tracer := NewJSONTracer(&buf).ForSession("session-1").WithClock(clock)

	_, load := tracer.Start(context.Background(), "load")
	_, patch := tracer.Start(context.Background(), "patch.oxygen_farm_output")
	patch.End(errors.New("boom"))
	patch.End(nil)
	load.End(nil)

	records := tracer.Records()
	if len(records) != 2 {
		t.Fatalf("expected two spans, got %d", len(records))
	}
	if records[0].Seq != 1 || records[0].Patch != "oxygen_farm_output" || records[0].OK || records[0].Error != "boom" {
		t.Fatalf("unexpected patch span %+v", records[0])
	}
	if records[1].Operation != "load" || records[1].Patch != "" || !records[1].OK || records[1].Session != "session-1" {
		t.Fatalf("unexpected load span %+v", records[1])
	}
	if records[1].DurationMS != 6 {
		t.Fatalf("expected 6ms load span, got %v", records[1].DurationMS)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two JSON lines, got %q", buf.String())
	}
	var decoded SpanRecord
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("decode span: %v", err)
	}
	if decoded.Operation != "patch.oxygen_farm_output" || decoded.Seq != 1 {
		t.Fatalf("unexpected decoded span %+v", decoded)
	}

	retained := NewJSONTracer(nil)
	_, span := retained.Start(context.Background(), "unload")
	span.End(nil)
	if len(retained.Records()) != 1 {
		t.Fatalf("nil writer tracer must retain spans")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	recorder.Observe(context.Background(), "load", true, 20*time.Millisecond)
	recorder.Observe(context.Background(), "load", false, 5*time.Millisecond)
	recorder.Observe(context.Background(), "unload", true, time.Millisecond)
	recorder.Observe(context.Background(), "", true, time.Millisecond)

	if got := testutil.ToFloat64(recorder.OperationsTotal.WithLabelValues("load", "success")); got != 1 {
		t.Fatalf("expected one successful load, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.OperationsTotal.WithLabelValues("load", "error")); got != 1 {
		t.Fatalf("expected one failed load, got %v", got)
	}
	if got := testutil.CollectAndCount(recorder.OperationDuration); got != 2 {
		t.Fatalf("expected two duration series, got %d", got)
	}

	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := NewPrometheusMetricsRecorder(nil); err != nil {
		t.Fatalf("unregistered recorder: %v", err)
	}
}

func TestPrometheusMetricsRecorderWithSession(t *testing.T) {
	f := newFixture(t)
	recorder, err := NewPrometheusMetricsRecorder(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	session := NewSession(f.reg, newMemorySettingsStore(), WithMetrics(recorder))
	if _, err := session.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := testutil.ToFloat64(recorder.OperationsTotal.WithLabelValues("patch."+PatchOxygenFarmOutput, "success")); got != 1 {
		t.Fatalf("expected one farm patch observation, got %v", got)
	}
	if got := testutil.ToFloat64(recorder.ActiveModifications); got != 16 {
		t.Fatalf("expected 16 active modifications, got %v", got)
	}
	if _, err := session.Unload(context.Background()); err != nil {
		t.Fatalf("unload: %v", err)
	}
	if got := testutil.ToFloat64(recorder.ActiveModifications); got != 0 {
		t.Fatalf("expected no active modifications after unload, got %v", got)
	}
}

func TestZapLogger(t *testing.T) {
	observed, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(observed))

	logger.Debug("debug", "k", 1)
	logger.Info("Made 3 modifications", "session", "abc")
	logger.Warn("warn")
	logger.Error("blueprint not found: StoneOreToIngot", "kind", "blueprint")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected four entries, got %d", len(entries))
	}
	if entries[1].LoggerName != LoggerName || entries[1].Message != "Made 3 modifications" {
		t.Fatalf("unexpected entry %+v", entries[1])
	}
	if entries[1].ContextMap()["session"] != "abc" {
		t.Fatalf("expected session field, got %v", entries[1].ContextMap())
	}
	if entries[3].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[3].Level)
	}

	if _, ok := NewZapLogger(nil).(noopLogger); !ok {
		t.Fatalf("nil zap logger must yield a noop logger")
	}
}
