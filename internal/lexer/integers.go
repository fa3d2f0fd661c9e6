package lexer

import (
	"regexp"
	"strconv"
	"strings"

	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/token"
)

// MapStrongSeparators turns `;` into a Strong separator.
var MapStrongSeparators = Mapping("map-strong-separators", func(t token.Token) (token.Token, error) {
	if token.IsSymbol(t, ";") {
		return token.Separator{Type: lang.Strong, Span: t.Source()}, nil
	}
	return t, nil
})

// MapIntegers turns integer-looking Text into Integer tokens.
var MapIntegers = Mapping("map-integers", func(t token.Token) (token.Token, error) {
	text, ok := t.(token.Text)
	if !ok {
		return t, nil
	}
	return parseInteger(text)
})

type integerFormat struct {
	name    string
	pattern *regexp.Regexp
	prefix  int
	base    int
}

// integerFormats are checked in order; the first full match wins.
var integerFormats = []integerFormat{
	{"hexadecimal", regexp.MustCompile(`^0[xX][0-9a-fA-F_]+$`), 2, 16},
	{"decimal", regexp.MustCompile(`^0[dD]?[0-9_]+$`), 0, 10},
	{"octal", regexp.MustCompile(`^0[oO][0-7_]+$`), 2, 8},
	{"binary", regexp.MustCompile(`^0[bB][01_]+$`), 2, 2},
	{"decimal", regexp.MustCompile(`^[0-9][0-9_]*$`), 0, 10},
}

func parseInteger(text token.Text) (token.Token, error) {
	for _, f := range integerFormats {
		if !f.pattern.MatchString(text.Value) {
			continue
		}
		digits := text.Value[f.prefix:]
		if f.base == 10 && len(digits) > 1 && (digits[1] == 'd' || digits[1] == 'D') {
			digits = digits[2:]
		}
		digits = strings.ReplaceAll(digits, "_", "")
		if digits == "" {
			return nil, diag.Errorf(diag.LexBadInteger, text.Span, "%s literal %q has no digits", f.name, text.Value)
		}
		v, err := strconv.ParseInt(digits, f.base, 64)
		if err != nil {
			return nil, diag.Wrap(diag.LexBadInteger, text.Span, err, "integer literal "+strconv.Quote(text.Value)+" out of range")
		}
		return token.Integer{Value: v, Span: text.Span}, nil
	}
	return text, nil
}
