package trace

import "errors"

// MultiTracer sends every event to each of its tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer combines tracers; nil entries are skipped.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, t := range tracers {
		if t != nil {
			m.tracers = append(m.tracers, t)
		}
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		t.Emit(ev)
	}
}

// Flush flushes every tracer and joins their errors.
func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every tracer and joins their errors.
func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }
