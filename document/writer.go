package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists a document.
type Writer interface {
	// Initialize overwrites the backing file with an empty list document.
	Initialize() error
	// ReplaceRange rewrites lines [start, end) of the backing file from lines.
	// Everything outside that range is kept byte-identical.
	ReplaceRange(lines Lines, start, end int) error
}

const Indent = "    "

// EmptyDocument is the content written by Initialize.
func EmptyDocument(listField string) Lines {
	return Lines{
		"{",
		Indent + `"` + listField + `": [`,
		Indent + "]",
		"}",
	}
}

type FileWriter struct {
	Filename  string
	ListField string
}

func NewFileWriter(filename, listField string) *FileWriter {
	return &FileWriter{
		Filename:  filename,
		ListField: listField,
	}
}

func (w *FileWriter) Initialize() error {
	return w.write(EmptyDocument(w.ListField), true)
}

func (w *FileWriter) ReplaceRange(lines Lines, start, end int) error {

	if start < 0 || end < start || end > len(lines) {
		return fmt.Errorf("%w: range [%d, %d) out of %d lines", ErrMalformed, start, end, len(lines))
	}

	data, err := os.ReadFile(w.Filename)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrIO, w.Filename, err)
	}
	content := string(data)
	trailingNewline := strings.HasSuffix(content, "\n")
	current := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	// Edits only happen inside the range, so head and tail keep their sizes.
	tail := len(lines) - end
	if start > len(current) || tail > len(current)-start {
		return fmt.Errorf("%w: %s is out of sync with memory", ErrMalformed, w.Filename)
	}

	base := ""
	if start > 0 {
		base = leadingSpace(current[start-1]) + Indent
	}

	result := make([]string, 0, start+(end-start)+tail)
	result = append(result, current[:start]...)
	result = append(result, render(lines[start:end], base)...)
	result = append(result, current[len(current)-tail:]...)

	return w.write(result, trailingNewline)
}

// render indents normalized lines and puts back the comma between objects.
func render(lines Lines, base string) []string {
	result := make([]string, 0, len(lines))
	depth := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "}") || strings.HasPrefix(line, "]") {
			depth = max(depth-1, 0)
		}
		out := base + strings.Repeat(Indent, depth) + line
		if line == "}" && i+1 < len(lines) && lines[i+1] == "{" {
			out += ","
		}
		if strings.HasSuffix(line, "{") || strings.HasSuffix(line, "[") {
			depth++
		}
		result = append(result, out)
	}
	return result
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// write replaces the file atomically.
func (w *FileWriter) write(lines []string, trailingNewline bool) error {

	content := strings.Join(lines, "\n")
	if trailingNewline {
		content += "\n"
	}

	dir := filepath.Dir(w.Filename)
	f, err := os.CreateTemp(dir, "."+filepath.Base(w.Filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename

	err = f.Chmod(0o644)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmp, err)
	}
	_, err = f.WriteString(content)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmp, err)
	}
	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmp, err)
	}

	err = os.Rename(tmp, w.Filename)
	if err != nil {
		return fmt.Errorf("%w: rename %s: %w", ErrIO, tmp, err)
	}

	return nil
}
