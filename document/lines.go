package document

import (
	"slices"
	"strings"
)

// Lines is the in-memory text of a document, one entry per line. All structural
// edits are positional inserts and deletes.
type Lines []string

func (l Lines) Len() int {
	return len(l)
}

func (l Lines) At(i int) string {
	return l[i]
}

// Insert puts lines at position i, shifting everything from i onwards.
func (l *Lines) Insert(i int, lines ...string) {
	*l = slices.Insert(*l, i, lines...)
}

// Delete removes lines in [from, to).
func (l *Lines) Delete(from, to int) {
	*l = slices.Delete(*l, from, to)
}

func (l Lines) Clone() Lines {
	return slices.Clone(l)
}

func (l Lines) Slice(from, to int) Lines {
	return l[from:to]
}

func (l Lines) String() string {
	return strings.Join(l, "\n")
}
