package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testConfig struct {
	Out    string `env:"CMD_TEST_OUT" envDefault:"stdout"`
	Format string `env:"CMD_TEST_FORMAT" envDefault:"ts"`
}

func registerTestFlags(fs *flag.FlagSet, cfg *testConfig) {
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "format")
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("GOCONST_CMD_TEST_OUT", "env.ts")
	t.Setenv("GOCONST_CMD_TEST_FORMAT", "md")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	registerTestFlags(fs, &cfgRef)

	if err := ParseArgs(fs, []string{"-out", "flag.ts"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Out != "flag.ts" {
		t.Fatalf("expected flag value for out, got %q", cfgRef.Out)
	}
	if cfgRef.Format != "md" {
		t.Fatalf("expected env format, got %q", cfgRef.Format)
	}
}

func TestParseConfigFromArgsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GOCONST_CMD_TEST_OUT", "env.ts")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-format", "sql"}, registerTestFlags); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Out != "env.ts" {
		t.Fatalf("expected env out, got %q", cfgRef.Out)
	}
	if cfgRef.Format != "sql" {
		t.Fatalf("expected flag format, got %q", cfgRef.Format)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceGoconst, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("GOCONST_OTEL_ENDPOINT", "")
	want := errors.New("render failed")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceGoconst, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}

func TestRunWithTelemetryRecordsCommandSpan(t *testing.T) {
	t.Setenv("GOCONST_OTEL_ENDPOINT", "")
	recorder := tracetest.NewSpanRecorder()
	previous := gootel.GetTracerProvider()
	gootel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { gootel.SetTracerProvider(previous) })

	want := errors.New("no constants")
	err := RunWithTelemetryAndOptions(context.Background(), ServiceGoconst, RunOptions{}, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(spans))
	}
	if spans[0].Name() != "goconst.command" {
		t.Fatalf("span name = %q", spans[0].Name())
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("span status = %v, want error", spans[0].Status().Code)
	}
}
