package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func installTracingInit(t *testing.T, fn func(context.Context, string) (func(context.Context) error, error)) {
	t.Helper()
	prev := tracingInit
	tracingInit = fn
	t.Cleanup(func() { tracingInit = prev })
}

func TestRmCmd_TracingInitFailureIsNonFatal(t *testing.T) {
	installTracingInit(t, func(context.Context, string) (func(context.Context) error, error) {
		return nil, errors.New("collector rejected config")
	})
	fake := &fakeSession{}
	installFakeSession(t, fake)

	stderr := &bytes.Buffer{}
	args := []string{"--url", "amqp://b/", "--all", "--otlp-endpoint", "http://collector:4318", "--log-level", "warn"}
	code := runRmCmd(args, &bytes.Buffer{}, stderr)
	if code != 0 {
		t.Fatalf("tracing failure must not block the command, got exit code %d", code)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected the command to reach the broker, got %d sends", len(fake.sent))
	}
	if !strings.Contains(stderr.String(), "tracing_init_failed") {
		t.Fatalf("expected init warning in logs, got %q", stderr.String())
	}
}

func TestRmCmd_TracingShutdownFlushesBeforeExit(t *testing.T) {
	flushed := false
	installTracingInit(t, func(context.Context, string) (func(context.Context) error, error) {
		return func(context.Context) error {
			flushed = true
			return nil
		}, nil
	})
	installFakeSession(t, &fakeSession{})

	args := []string{"--url", "amqp://b/", "--all", "--otlp-endpoint", "http://collector:4318", "--log-level", "error"}
	code := runRmCmd(args, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !flushed {
		t.Fatal("span exporter must be flushed before the command returns")
	}
}

func TestFlushTracing_ShutdownErrorIsLogged(t *testing.T) {
	stderr := &bytes.Buffer{}
	logger, err := newLogger("warn", stderr)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	flushTracing(connSettings{
		logger: logger,
		shutdownTracing: func(context.Context) error {
			return errors.New("export queue stuck")
		},
	})
	if !strings.Contains(stderr.String(), "tracing_shutdown_failed") {
		t.Fatalf("expected shutdown warning, got %q", stderr.String())
	}
}
