package lang_test

import (
	"testing"

	"axiom/internal/lang"
)

func TestSeparatorOrdering(t *testing.T) {
	if !(lang.NoSeparator < lang.Weak && lang.Weak < lang.Normal && lang.Normal < lang.Strong) {
		t.Fatalf("separator severities must be ordered none < weak < normal < strong")
	}
}

func TestLevelSet(t *testing.T) {
	tests := []struct {
		name string
		set  lang.LevelSet
		in   []lang.SeparatorType
		out  []lang.SeparatorType
	}{
		{"levels", lang.Levels(lang.Weak, lang.Strong), []lang.SeparatorType{lang.Weak, lang.Strong}, []lang.SeparatorType{lang.NoSeparator, lang.Normal}},
		{"at least normal", lang.AtLeast(lang.Normal), []lang.SeparatorType{lang.Normal, lang.Strong}, []lang.SeparatorType{lang.NoSeparator, lang.Weak}},
		{"optional weak", lang.OptionalWeak, []lang.SeparatorType{lang.NoSeparator, lang.Weak}, []lang.SeparatorType{lang.Normal, lang.Strong}},
		{"any", lang.AnySeparator, []lang.SeparatorType{lang.Weak, lang.Normal, lang.Strong}, []lang.SeparatorType{lang.NoSeparator}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, l := range tt.in {
				if !tt.set.Has(l) {
					t.Errorf("%s should contain %s", tt.set, l)
				}
			}
			for _, l := range tt.out {
				if tt.set.Has(l) {
					t.Errorf("%s must not contain %s", tt.set, l)
				}
			}
		})
	}
	if got := lang.Statement.String(); got != "{normal,strong}" {
		t.Errorf("Statement.String() = %q", got)
	}
}

func TestBrackets(t *testing.T) {
	for _, b := range []lang.BracketType{lang.Round, lang.Square, lang.Curly} {
		open, ok := lang.OpeningBracket(b.Open())
		if !ok || open != b {
			t.Errorf("OpeningBracket(%q) = %v, %v", b.Open(), open, ok)
		}
		closing, ok := lang.ClosingBracket(b.Close())
		if !ok || closing != b {
			t.Errorf("ClosingBracket(%q) = %v, %v", b.Close(), closing, ok)
		}
		if _, ok := lang.OpeningBracket(b.Close()); ok {
			t.Errorf("%q must not open a bracket", b.Close())
		}
	}
}

func TestNamespacedId(t *testing.T) {
	id := lang.ParseNamespacedId("this::is::a::namespace")
	if len(id) != 4 || id[3] != "namespace" {
		t.Fatalf("unexpected segments: %#v", id)
	}
	if id.String() != "this::is::a::namespace" {
		t.Errorf("String() = %q", id.String())
	}
	if !id.Equal(lang.NamespacedId{"this", "is", "a", "namespace"}) {
		t.Errorf("structural equality failed")
	}
	if id.Equal(lang.NamespacedId{"this", "is"}) {
		t.Errorf("prefix must not be equal")
	}

	child := id.Parent().Child("other")
	if child.String() != "this::is::a::other" {
		t.Errorf("Parent().Child() = %q", child)
	}
	if id[3] != "namespace" {
		t.Errorf("Child mutated the receiver")
	}

	if !lang.ParseNamespacedId("").IsGlobal() {
		t.Errorf("empty string must parse to the global id")
	}
	if !lang.Global.Equal(lang.NamespacedId(nil)) {
		t.Errorf("nil and empty ids must compare equal")
	}
	if lang.Global.Parent().String() != "" {
		t.Errorf("parent of global must be global")
	}
}
