package diagfmt

import (
	"encoding/json"
	"io"

	"aic/internal/diag"
	"aic/internal/source"
)

// NoteRecord is a serialized diagnostic note.
type NoteRecord struct {
	Message  string   `json:"message" msgpack:"message"`
	Location Location `json:"location" msgpack:"location"`
}

// DiagnosticRecord is the machine-readable form of a diagnostic,
// shared by the JSON and msgpack encoders.
type DiagnosticRecord struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Title    string       `json:"title" msgpack:"title"`
	Message  string       `json:"message" msgpack:"message"`
	Location Location     `json:"location" msgpack:"location"`
	Notes    []NoteRecord `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// Output представляет корневую структуру вывода.
type Output struct {
	Diagnostics []DiagnosticRecord `json:"diagnostics" msgpack:"diagnostics"`
	Count       int                `json:"count" msgpack:"count"`
}

// BuildOutput converts a bag into serializable records.
func BuildOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Output {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	out := Output{Diagnostics: make([]DiagnosticRecord, 0, len(items)), Count: bag.Len()}
	for _, d := range items {
		rec := DiagnosticRecord{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				rec.Notes = append(rec.Notes, NoteRecord{
					Message:  n.Msg,
					Location: makeLocation(n.Span, fs, opts.PathMode, opts.IncludePositions),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, rec)
	}
	return out
}

// JSON writes diagnostics as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(bag, fs, opts))
}
