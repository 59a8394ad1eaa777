package document

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"sync"
)

type Options struct {
	// ListField is the name of the array field written by Initialize.
	ListField string
	// KeyField is the record field Remove and Lookup match against.
	KeyField string
	// Writer persists edits, defaults to a FileWriter on the document file.
	Writer Writer
}

func DefaultOptions() *Options {
	return &Options{
		ListField: "list",
		KeyField:  "id",
	}
}

// Document is a list of flat records kept in a text file. Lines are the source
// of truth; records are re-derived after every load or edit.
type Document struct {
	filename string
	options  Options
	writer   Writer

	mutex   sync.Mutex
	lines   Lines
	records []*Record
	spans   []Span
	index   *Index
}

// Open loads filename, creating and initializing it when it does not exist or
// is empty.
func Open(filename string, options *Options) (*Document, error) {

	if options == nil {
		options = DefaultOptions()
	}
	d := &Document{
		filename: filename,
		options:  *options,
		writer:   options.Writer,
	}
	if d.options.ListField == "" {
		d.options.ListField = "list"
	}
	if d.options.KeyField == "" {
		d.options.KeyField = "id"
	}
	if d.writer == nil {
		d.writer = NewFileWriter(filename, d.options.ListField)
	}

	info, err := os.Stat(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0):
		err = d.writer.Initialize()
		if err != nil {
			return nil, err
		}
		slog.Debug("document initialized", "filename", filename)
	case err != nil:
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, filename, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, filename)
	}

	err = d.reload()
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Document) Filename() string {
	return d.filename
}

func (d *Document) KeyField() string {
	return d.options.KeyField
}

// Reload reads the file again and replaces lines and records. On failure the
// previous state is kept.
func (d *Document) Reload() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.reload()
}

func (d *Document) reload() error {

	f, err := os.Open(d.filename)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, d.filename, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", d.filename, err)
	}

	parsed, err := Parse(lines)
	if err != nil {
		return fmt.Errorf("load %s: %w", d.filename, err)
	}

	d.commit(parsed)

	return nil
}

func (d *Document) commit(parsed *Parsed) {
	d.lines = parsed.Lines
	d.records = parsed.Records
	d.spans = parsed.Spans
	d.index = NewIndex(d.options.KeyField, parsed.Records)
}

// Records returns the current records in file order.
func (d *Document) Records() []*Record {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	result := make([]*Record, len(d.records))
	copy(result, d.records)
	return result
}

func (d *Document) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.records)
}

// Lines returns a copy of the in-memory lines.
func (d *Document) Lines() Lines {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.lines.Clone()
}

// Append adds a new record at the end of the list and persists it.
func (d *Document) Append(fielder Fielder) (*Record, error) {

	fields, err := fielder.Fields()
	if err != nil {
		if errors.Is(err, ErrFields) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFields, err)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	edit, err := appendObject(d.lines, fields)
	if err != nil {
		return nil, err
	}

	err = d.apply(edit)
	if err != nil {
		return nil, err
	}

	return d.records[len(d.records)-1], nil
}

// Remove deletes the record whose key field equals key. When several records
// share the key the last one goes.
func (d *Document) Remove(key int) (*Record, error) {

	d.mutex.Lock()
	defer d.mutex.Unlock()

	pos, found := d.index.Last(strconv.Itoa(key))
	if !found {
		return nil, fmt.Errorf("%w: %s %d", ErrKeyNotFound, d.options.KeyField, key)
	}
	removed := d.records[pos]

	edit, err := removeObject(d.lines, d.spans[pos])
	if err != nil {
		return nil, err
	}

	err = d.apply(edit)
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// apply persists an edit and, only then, makes it the current state.
func (d *Document) apply(edit *Edit) error {

	parsed, err := Parse(edit.Lines)
	if err != nil {
		return err
	}

	err = d.writer.ReplaceRange(edit.Lines, edit.Start, edit.End)
	if err != nil {
		return err
	}

	d.commit(parsed)
	return nil
}

func (d *Document) Lookup(key int) (*Record, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	pos, found := d.index.Last(strconv.Itoa(key))
	if !found {
		return nil, false
	}
	return d.records[pos], true
}

// Ascend walks the records in key order. Records without key are skipped.
func (d *Document) Ascend(reverse bool, f func(r *Record) bool) {
	d.mutex.Lock()
	records := d.records
	index := d.index
	d.mutex.Unlock()

	index.Ascend(reverse, func(pos int) bool {
		return f(records[pos])
	})
}

// Clear overwrites the file with an empty list.
func (d *Document) Clear() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	err := d.writer.Initialize()
	if err != nil {
		return err
	}
	return d.reload()
}

// Drop removes the backing file.
func (d *Document) Drop() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	err := os.Remove(d.filename)
	if err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrIO, d.filename, err)
	}
	d.commit(&Parsed{})
	return nil
}
