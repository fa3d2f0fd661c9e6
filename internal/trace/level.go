package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failed units, stages and runs only
	LevelPhase               // directory runs and pipeline stages
	LevelDetail              // units and lexer passes
	LevelDebug               // every directive
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest is the finest scope each level lets through; 0 means none.
var deepest = [...]Scope{
	LevelOff:    0,
	LevelError:  0,
	LevelPhase:  ScopePass,
	LevelDetail: ScopeUnit,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, ignoring case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (expected %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(deepest) {
		return false
	}
	return scope != 0 && scope <= deepest[l]
}

// opens reports whether spans of scope are begun at all. LevelError tracks
// unit and coarser spans so that their failures can be emitted.
func (l Level) opens(scope Scope) bool {
	if l == LevelError {
		return scope != 0 && scope <= ScopeUnit
	}
	return l.ShouldEmit(scope)
}
