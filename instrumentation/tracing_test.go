package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingInstrumentation(t *testing.T) (*Instrumentation, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	inst, err := New(Config{Enabled: true, TracerProvider: tp})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return inst, recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestRecordError(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("registry").Start(context.Background(), "test-span")
	RecordError(span, errors.New("test error"))
	span.End()

	got := recorder.Ended()[0]
	if got.Status().Code != codes.Error {
		t.Errorf("status = %v, want %v", got.Status().Code, codes.Error)
	}
	if got.Status().Description != "test error" {
		t.Errorf("status description = %q, want %q", got.Status().Description, "test error")
	}
	if len(got.Events()) != 1 {
		t.Errorf("events = %d, want 1 exception event", len(got.Events()))
	}
}

func TestRecordError_NilSafe(t *testing.T) {
	RecordError(nil, errors.New("test error"))
	RecordError(nil, nil)
	SetSpanSuccess(nil)
	SetSpanAttributes(nil, attribute.String("k", "v"))
	AddStrategyAttributes(nil, "google", "direct")
	AddTokenAttributes(nil, "Bearer", true)
}

func TestSetSpanSuccess(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("registry").Start(context.Background(), "test-span")
	SetSpanSuccess(span)
	span.End()

	if got := recorder.Ended()[0].Status().Code; got != codes.Ok {
		t.Errorf("status = %v, want %v", got, codes.Ok)
	}
}

func TestAddStrategyAttributes(t *testing.T) {
	tests := []struct {
		name      string
		strategy  string
		shape     string
		wantShape bool
	}{
		{"with shape", "google", "direct", true},
		{"without shape", "dex", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, recorder := newRecordingInstrumentation(t)

			_, span := inst.Tracer("registry").Start(context.Background(), "test-span")
			AddStrategyAttributes(span, tt.strategy, tt.shape)
			span.End()

			attrs := attrMap(recorder.Ended()[0].Attributes())
			if got := attrs[AttrStrategyName].AsString(); got != tt.strategy {
				t.Errorf("%s = %q, want %q", AttrStrategyName, got, tt.strategy)
			}
			_, hasShape := attrs[AttrStrategyShape]
			if hasShape != tt.wantShape {
				t.Errorf("has %s = %v, want %v", AttrStrategyShape, hasShape, tt.wantShape)
			}
		})
	}
}

func TestAddTokenAttributes(t *testing.T) {
	inst, recorder := newRecordingInstrumentation(t)

	_, span := inst.Tracer("registry").Start(context.Background(), "test-span")
	AddTokenAttributes(span, "Bearer", true)
	span.End()

	attrs := attrMap(recorder.Ended()[0].Attributes())
	if got := attrs[AttrTokenType].AsString(); got != "Bearer" {
		t.Errorf("%s = %q, want %q", AttrTokenType, got, "Bearer")
	}
	if got := attrs[AttrTokenRotated].AsBool(); !got {
		t.Errorf("%s = false, want true", AttrTokenRotated)
	}
}
