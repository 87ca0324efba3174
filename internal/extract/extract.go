// Package extract locates the bootstrap-data section of an initialization
// script.
//
// Two strategies exist. Between slices the text at a pair of literal section
// headings. ScanStatements collects INSERT statements that target known
// tables, line by line. Neither strategy falls back on its own: both return
// an explicit NotFound result, and Bootstrap is the one place that decides
// the order in which they are tried.
//
// All functions are pure.
package extract

import "strings"

// Default section headings of INIT_NEW_DATABASE.sql.
const (
	DefaultStartMarker = "-- PART 2: 初始資料"
	DefaultEndMarker   = "-- PART 3: Row Level Security"
)

// DefaultNeedles select the bootstrap INSERT statements when the section
// headings are missing.
var DefaultNeedles = []string{
	"INSERT INTO public.roles",
	"INSERT INTO public.classrooms",
	"INSERT INTO public.tutoring_center_settings",
}

// StatementTerminator ends a collected statement group.
const StatementTerminator = ";"

// Markers bound a section by literal text.
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns the headings used by INIT_NEW_DATABASE.sql.
func DefaultMarkers() Markers {
	return Markers{Start: DefaultStartMarker, End: DefaultEndMarker}
}

// Span is a half-open byte range [Start, End) into the searched text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Result is either Found with the extracted text, or NotFound.
type Result struct {
	Found bool
	Span  Span
	Text  string
}

// NotFound is the empty result.
func NotFound() Result { return Result{} }

func found(text string, span Span) Result {
	return Result{Found: true, Span: span, Text: text[span.Start:span.End]}
}

// Between returns the text from the start marker up to, not including, the
// end marker. Both markers are searched in the whole text, so an end marker
// that only occurs before the start marker yields NotFound.
func Between(text string, m Markers) Result {
	if m.Start == "" || m.End == "" {
		return NotFound()
	}
	start := strings.Index(text, m.Start)
	end := strings.Index(text, m.End)
	if start < 0 || end < 0 || end < start {
		return NotFound()
	}
	return found(text, Span{Start: start, End: end})
}

// ScanStatements collects every line containing one of needles together with
// the lines that follow it, up to and including the first line containing
// the statement terminator. Groups are joined with "\n" in the order they
// were found; a group whose terminator never appears runs to the end of the
// text. Every matching line starts its own group, even one already
// collected as part of an earlier group. Span covers the first through the
// last collected line.
func ScanStatements(text string, needles []string) Result {
	if text == "" || len(needles) == 0 {
		return NotFound()
	}

	lines := strings.Split(text, "\n")
	offsets := lineOffsets(lines)

	var collected []string
	first, last := -1, -1
	for i := range lines {
		if !containsAny(lines[i], needles) {
			continue
		}
		j := i
		for ; j < len(lines); j++ {
			collected = append(collected, lines[j])
			if strings.Contains(lines[j], StatementTerminator) {
				break
			}
		}
		if first < 0 {
			first = i
		}
		if j >= len(lines) {
			j = len(lines) - 1
		}
		if j > last {
			last = j
		}
	}

	if first < 0 {
		return NotFound()
	}
	return Result{
		Found: true,
		Span:  Span{Start: offsets[first], End: offsets[last] + len(lines[last])},
		Text:  strings.Join(collected, "\n"),
	}
}

func lineOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	pos := 0
	for i, l := range lines {
		offsets[i] = pos
		pos += len(l) + 1
	}
	return offsets
}

func containsAny(line string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(line, n) {
			return true
		}
	}
	return false
}
