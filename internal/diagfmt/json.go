package diagfmt

import (
	"encoding/json"
	"io"

	"axiom/internal/diag"
	"axiom/internal/source"
)

// LocationJSON представляет местоположение в юните для JSON
type LocationJSON struct {
	Unit      string `json:"unit"`
	StartByte int    `json:"start_byte"`
	EndByte   int    `json:"end_byte"`
	StartLine int    `json:"start_line,omitempty"`
	StartCol  int    `json:"start_col,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndCol    int    `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// ErrorJSON представляет ошибку в JSON формате
type ErrorJSON struct {
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Cause    string        `json:"cause,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// ErrorsOutput представляет корневую структуру JSON вывода
type ErrorsOutput struct {
	Errors []ErrorJSON `json:"errors"`
	Count  int         `json:"count"`
}

// makeLocation создаёт LocationJSON из ссылки; nil для ссылок без юнита.
func makeLocation(ref source.Reference, set *source.UnitSet, mode PathMode, includePositions bool) *LocationJSON {
	switch r := ref.(type) {
	case source.Slice:
		if r.Unit == nil {
			return nil
		}
		loc := &LocationJSON{
			Unit:      formatPath(set, r.Unit, mode),
			StartByte: r.Index,
			EndByte:   r.End(),
		}
		if includePositions {
			start, end := r.Unit.Position(r.Index), r.Unit.Position(r.End())
			loc.StartLine, loc.StartCol = int(start.Line), int(start.Col)
			loc.EndLine, loc.EndCol = int(end.Line), int(end.Col)
		}
		return loc
	case source.Generated:
		return &LocationJSON{Unit: "<" + r.Generator + ">"}
	default:
		return nil
	}
}

// BuildErrorsOutput формирует структуру JSON-вывода без сериализации.
func BuildErrorsOutput(errs []*diag.Error, set *source.UnitSet, opts JSONOpts) ErrorsOutput {
	n := len(errs)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := make([]ErrorJSON, 0, n)
	for _, e := range errs[:n] {
		if e == nil {
			continue
		}
		ej := ErrorJSON{
			Code:     e.Code.ID(),
			Title:    e.Code.Title(),
			Message:  e.Msg,
			Location: makeLocation(e.Ref, set, opts.PathMode, opts.IncludePositions),
		}
		if e.Cause != nil {
			ej.Cause = e.Cause.Error()
		}
		if opts.IncludeNotes {
			for _, note := range e.Notes {
				ej.Notes = append(ej.Notes, NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Ref, set, opts.PathMode, opts.IncludePositions),
				})
			}
		}
		out = append(out, ej)
	}
	return ErrorsOutput{Errors: out, Count: len(out)}
}

// JSON форматирует ошибки в JSON формат.
func JSON(w io.Writer, errs []*diag.Error, set *source.UnitSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildErrorsOutput(errs, set, opts))
}
