package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // one readable line per event
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson)", s)
}

// FormatEvent renders ev with a trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time      string  `json:"time"`
	Seq       uint64  `json:"seq"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope"`
	SpanID    uint64  `json:"span_id,omitempty"`
	ParentID  uint64  `json:"parent_id,omitempty"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit,omitempty"`
	Pass      string  `json:"pass,omitempty"`
	Directive string  `json:"directive,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
	Tokens    *int    `json:"tokens,omitempty"`
	Code      string  `json:"code,omitempty"`
	Failed    bool    `json:"failed,omitempty"`
	Detail    string  `json:"detail,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Unit:      ev.Site.Unit,
		Pass:      ev.Site.Pass,
		Directive: ev.Site.Directive,
		ElapsedMS: float64(ev.Elapsed.Microseconds()) / 1000,
		Failed:    ev.Failed,
		Detail:    ev.Detail,
	}
	if ev.Tokens >= 0 {
		j.Tokens = &ev.Tokens
	}
	if ev.Code != 0 {
		j.Code = ev.Code.ID()
	}
	data, _ := json.Marshal(j)
	return append(data, '\n')
}

var arrows = [...]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
	KindHeartbeat: "♡",
}

// formatText writes
//
//	15:04:05.000 ··→ name unit/pass !directive tokens=N 1.25ms CODE (detail)
//
// indented two spaces per scope below driver.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000"))
	sb.WriteByte(' ')
	if ev.Scope > ScopeDriver {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	if int(ev.Kind) < len(arrows) {
		sb.WriteString(arrows[ev.Kind])
		sb.WriteByte(' ')
	}
	sb.WriteString(ev.Name)

	if where := siteText(ev.Site); where != "" {
		sb.WriteByte(' ')
		sb.WriteString(where)
	}
	if ev.Kind == KindSpanEnd {
		if ev.Tokens >= 0 {
			fmt.Fprintf(&sb, " tokens=%d", ev.Tokens)
		}
		fmt.Fprintf(&sb, " %s", ev.Elapsed.Round(time.Microsecond))
		if ev.Code != 0 {
			sb.WriteByte(' ')
			sb.WriteString(ev.Code.ID())
		}
	}
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

func siteText(s Site) string {
	var parts []string
	switch {
	case s.Unit != "" && s.Pass != "":
		parts = append(parts, s.Unit+"/"+s.Pass)
	case s.Unit != "":
		parts = append(parts, s.Unit)
	case s.Pass != "":
		parts = append(parts, s.Pass)
	}
	if s.Directive != "" {
		parts = append(parts, "!"+s.Directive)
	}
	return strings.Join(parts, " ")
}
