package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexInvalidUTF8        Code = 1001
	LexCharUnterminated   Code = 1002
	LexCharEmpty          Code = 1003
	LexCharTooLong        Code = 1004
	LexUnknownEscape      Code = 1005
	LexStringNewline      Code = 1006
	LexStringUnterminated Code = 1007
	LexBadInteger         Code = 1008
	LexPlaceholderMissing Code = 1009
	LexPlaceholderInvalid Code = 1010
	LexLabelMissing       Code = 1011
	LexLabelInvalid       Code = 1012
	LexDirectiveMissing   Code = 1013
	LexDirectiveInvalid   Code = 1014
	LexUnmatchedClose     Code = 1015
	LexMismatchedBracket  Code = 1016
	LexUnclosedBracket    Code = 1017

	// Директивы
	SynInfo             Code = 2000
	SynUnknownDirective Code = 2001
	SynIncludeMissing   Code = 2002
	SynIncludeKind      Code = 2003
	SynDefineMissingID  Code = 2004
	SynDefineEmpty      Code = 2005
	SynInsertMissing    Code = 2006
	SynInsertTemplate   Code = 2007
	SynArgumentList     Code = 2008
	SynAtMissing        Code = 2009
	SynAtKind           Code = 2010
	SynInMissing        Code = 2011
	SynInKind           Code = 2012
	SynIfEmpty          Code = 2013
	SynRepeatedMissing  Code = 2014
	SynRepeatedKind     Code = 2015
	SynHeaderDefault    Code = 2016
	SynTooDeep          Code = 2017

	// Драйвер / IO
	DrvInfo        Code = 3000
	DrvMissingUnit Code = 3001
	DrvLoadFile    Code = 3002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexInvalidUTF8:        "Invalid UTF-8 in source",
		LexCharUnterminated:   "Unterminated character literal",
		LexCharEmpty:          "Empty character literal",
		LexCharTooLong:        "Character literal holds more than one codepoint",
		LexUnknownEscape:      "Unknown escape sequence",
		LexStringNewline:      "Line break inside string literal",
		LexStringUnterminated: "Unterminated string literal",
		LexBadInteger:         "Malformed integer literal",
		LexPlaceholderMissing: "Missing placeholder name",
		LexPlaceholderInvalid: "Invalid placeholder name",
		LexLabelMissing:       "Missing label name",
		LexLabelInvalid:       "Invalid label name",
		LexDirectiveMissing:   "Missing directive name",
		LexDirectiveInvalid:   "Invalid directive name",
		LexUnmatchedClose:     "Closing bracket without opening bracket",
		LexMismatchedBracket:  "Mismatched bracket",
		LexUnclosedBracket:    "Unmatched opening bracket",
		SynInfo:               "Directive information",
		SynUnknownDirective:   "Unknown directive",
		SynIncludeMissing:     "Missing include target",
		SynIncludeKind:        "Include target must be a string or placeholder",
		SynDefineMissingID:    "Missing definition id",
		SynDefineEmpty:        "Empty definition value",
		SynInsertMissing:      "Missing template or argument list",
		SynInsertTemplate:     "Malformed template",
		SynArgumentList:       "Malformed argument list",
		SynAtMissing:          "Missing address",
		SynAtKind:             "Address must be an unsigned integer or placeholder",
		SynInMissing:          "Missing region",
		SynInKind:             "Region must be a placeholder",
		SynIfEmpty:            "Empty condition",
		SynRepeatedMissing:    "Missing repeat count",
		SynRepeatedKind:       "Repeat count must be an unsigned integer or placeholder",
		SynHeaderDefault:      "Malformed parameter default",
		SynTooDeep:            "Nesting too deep",
		DrvInfo:               "Driver information",
		DrvMissingUnit:        "Included unit not found",
		DrvLoadFile:           "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
