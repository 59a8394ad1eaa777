package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Span holds the line indexes of a record's opening and closing braces.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Parsed is the result of one scan: the normalized lines and the records found
// between the array markers, with the lines each record occupies.
type Parsed struct {
	Lines   Lines
	Records []*Record
	Spans   []Span
}

// ReadLines scans r and normalizes every line.
func ReadLines(r io.Reader) (Lines, error) {
	lines := Lines{}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		lines = append(lines, normalize(s.Text()))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan: %w", ErrIO, err)
	}
	return lines, nil
}

// normalize strips indentation and collapses '},' into '}'. This is the form
// kept in memory; the writer puts indentation and separators back.
func normalize(line string) string {
	line = strings.TrimSpace(line)
	if strings.TrimRight(line, ",") == "}" {
		return "}"
	}
	return line
}

func isArrayOpen(line string) bool {
	return strings.HasSuffix(line, "[")
}

func isArrayClose(line string) bool {
	return strings.HasPrefix(line, "]")
}

// Parse reconstructs the records of the first array found in lines. Lines are
// normalized before scanning. A record is captured as soon as its closing
// brace is seen.
func Parse(lines Lines) (*Parsed, error) {

	p := &Parsed{
		Lines:   make(Lines, 0, len(lines)),
		Records: []*Record{},
		Spans:   []Span{},
	}

	const (
		beforeList = iota
		inList
		afterList
	)
	state := beforeList
	insideObject := false
	var current *Record
	var start int

	for i, line := range lines {
		line = normalize(line)
		p.Lines = append(p.Lines, line)

		switch {
		case state == beforeList:
			if isArrayOpen(line) {
				state = inList
			}
		case state == afterList:
			// nothing of interest after the list
		case line == "{":
			if insideObject {
				return nil, fmt.Errorf("%w: line %d: nested object", ErrMalformed, i+1)
			}
			insideObject = true
			current = &Record{Fields: []Field{}}
			start = i
		case line == "}":
			if !insideObject {
				return nil, fmt.Errorf("%w: line %d: unexpected '}'", ErrMalformed, i+1)
			}
			insideObject = false
			p.Records = append(p.Records, current)
			p.Spans = append(p.Spans, Span{Start: start, End: i})
		case isArrayClose(line):
			if insideObject {
				return nil, fmt.Errorf("%w: line %d: list closed inside an object", ErrMalformed, i+1)
			}
			state = afterList
		case line == "":
			// blank lines are tolerated anywhere
		case insideObject:
			field, err := parseField(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrMalformed, i+1, err.Error())
			}
			current.Fields = append(current.Fields, field)
		default:
			return nil, fmt.Errorf("%w: line %d: unexpected '%s'", ErrMalformed, i+1, line)
		}
	}

	switch state {
	case beforeList:
		return nil, fmt.Errorf("%w: list opening marker not found", ErrMalformed)
	case inList:
		return nil, fmt.Errorf("%w: list closing marker not found", ErrMalformed)
	}

	return p, nil
}

// parseField reads a normalized `"name" : value` line, trailing comma optional.
func parseField(line string) (Field, error) {

	f := Field{}

	if !strings.HasPrefix(line, `"`) {
		return f, fmt.Errorf("field name must be quoted")
	}
	closing := strings.Index(line[1:], `"`)
	if closing < 0 {
		return f, fmt.Errorf("unterminated field name")
	}
	f.Name = line[1 : closing+1]

	rest := strings.TrimSpace(line[closing+2:])
	if !strings.HasPrefix(rest, ":") {
		return f, fmt.Errorf("missing ':' after field '%s'", f.Name)
	}
	rest = strings.TrimSpace(rest[1:])
	rest = strings.TrimSpace(strings.TrimSuffix(rest, ","))

	if len(rest) >= 2 && strings.HasPrefix(rest, `"`) && strings.HasSuffix(rest, `"`) {
		f.Value = rest[1 : len(rest)-1]
		f.String = true
		return f, nil
	}
	if !isPrimitive(rest) {
		return f, fmt.Errorf("bad value for field '%s': %q", f.Name, rest)
	}
	f.Value = rest

	return f, nil
}
