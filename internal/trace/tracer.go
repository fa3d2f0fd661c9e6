package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations are goroutine-safe:
// ParseDir emits from its worker pool.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop drops every event.
var Nop Tracer = nopTracer{}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory for a crash dump
	ModeBoth
)

var modeNames = map[string]StorageMode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return ModeRing, fmt.Errorf("invalid trace mode %q (expected stream|ring|both)", s)
}

// DefaultRingSize is the ring capacity when Config.RingSize is unset.
const DefaultRingSize = 4096

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks NDJSON for *.json and *.ndjson paths
	Output     io.Writer // overrides OutputPath
	OutputPath string    // "-" or empty is stderr
	RingSize   int
	// Heartbeat wraps the tracer in a Heartbeat when positive.
	Heartbeat time.Duration
}

// New builds the tracer described by cfg.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}

	var sinks []Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := cfg.writer()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, cfg.format()))
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}

	var t Tracer
	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("unknown trace mode %v", cfg.Mode)
	case 1:
		t = sinks[0]
	default:
		t = NewMultiTracer(cfg.Level, sinks...)
	}
	if hb := StartHeartbeat(t, cfg.Heartbeat); hb != nil {
		t = hb
	}
	return t, nil
}

func (cfg Config) format() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch filepath.Ext(cfg.OutputPath) {
	case ".json", ".ndjson":
		return FormatNDJSON
	}
	return FormatText
}

func (cfg Config) writer() (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}
