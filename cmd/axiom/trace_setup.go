package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"axiom/internal/trace"
)

// traceFlags are the persistent --trace* flags.
type traceFlags struct {
	output    string
	level     string
	mode      string
	ringSize  int
	heartbeat time.Duration
}

var (
	traceOpts    traceFlags
	activeTracer trace.Tracer = trace.Nop
)

func registerTraceFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&traceOpts.output, "trace", "", "trace output path (- for stderr, *.ndjson for JSON lines)")
	fs.StringVar(&traceOpts.level, "trace-level", "off", "trace level (off|error|phase|detail|debug)")
	fs.StringVar(&traceOpts.mode, "trace-mode", "stream", "trace storage (stream|ring|both)")
	fs.IntVar(&traceOpts.ringSize, "trace-ring-size", trace.DefaultRingSize, "events kept for the crash dump")
	fs.DurationVar(&traceOpts.heartbeat, "trace-heartbeat", 0, "report the open unit and pass at this interval (0 disables)")
}

// config turns the flags into a tracer config. A bare --trace means phase
// level; streaming without a path goes to stderr.
func (f traceFlags) config() (trace.Config, error) {
	level, err := trace.ParseLevel(f.level)
	if err != nil {
		return trace.Config{}, err
	}
	if level == trace.LevelOff && f.output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(f.mode)
	if err != nil {
		return trace.Config{}, err
	}
	out := f.output
	if out == "" && mode != trace.ModeRing {
		out = "-"
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: out,
		RingSize:   f.ringSize,
		Heartbeat:  f.heartbeat,
	}, nil
}

// setupTracing attaches the configured tracer to the command context and
// returns the function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceOpts.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, err
	}
	activeTracer = tracer
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	stderr := cmd.ErrOrStderr()
	return func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close: %v\n", err)
		}
		activeTracer = trace.Nop
	}, nil
}

// dumpTraceOnPanic writes the ring buffer to stderr and re-panics.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := trace.FindRing(activeTracer); ok {
		fmt.Fprintf(os.Stderr, "panic: %v\n", r)
		writeCrashDump(os.Stderr, ring)
	}
	panic(r)
}

// writeCrashDump lists the failed spans and then the last events.
func writeCrashDump(w io.Writer, ring *trace.RingTracer) {
	if failed := ring.Failures(); len(failed) > 0 {
		fmt.Fprintln(w, "-- failed spans --")
		for _, ev := range failed {
			_, _ = w.Write(trace.FormatEvent(&ev, trace.FormatText))
		}
	}
	fmt.Fprintln(w, "-- last trace events --")
	_ = ring.Dump(w, trace.FormatText)
}
