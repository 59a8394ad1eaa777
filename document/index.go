package document

import (
	"math"
	"strconv"

	"github.com/google/btree"
)

type indexItem struct {
	Key     string
	Number  float64
	Numeric bool
	Pos     int
}

func newIndexItem(key string, pos int) indexItem {
	n, err := strconv.ParseFloat(key, 64)
	return indexItem{
		Key:     key,
		Number:  n,
		Numeric: err == nil && !math.IsNaN(n),
		Pos:     pos,
	}
}

// compareKey orders numeric keys first (by value), then the rest by text.
func (a indexItem) compareKey(b indexItem) int {
	if a.Numeric != b.Numeric {
		if a.Numeric {
			return -1
		}
		return 1
	}
	if a.Numeric && a.Number != b.Number {
		if a.Number < b.Number {
			return -1
		}
		return 1
	}
	switch {
	case a.Key < b.Key:
		return -1
	case a.Key > b.Key:
		return 1
	}
	return 0
}

func (a indexItem) less(b indexItem) bool {
	if c := a.compareKey(b); c != 0 {
		return c < 0
	}
	return a.Pos < b.Pos
}

// Index orders record positions by the value of one field. Records missing the
// field are not indexed.
type Index struct {
	Field string
	tree  *btree.BTreeG[indexItem]
}

func NewIndex(field string, records []*Record) *Index {
	index := &Index{
		Field: field,
		tree:  btree.NewG(32, indexItem.less),
	}
	for pos, r := range records {
		key, ok := r.Get(field)
		if !ok {
			continue
		}
		index.tree.ReplaceOrInsert(newIndexItem(key, pos))
	}
	return index
}

func (x *Index) Len() int {
	return x.tree.Len()
}

// Last returns the highest position whose key is exactly key.
func (x *Index) Last(key string) (pos int, found bool) {
	pivot := newIndexItem(key, math.MaxInt)
	x.tree.DescendLessOrEqual(pivot, func(item indexItem) bool {
		if item.compareKey(pivot) == 0 {
			pos, found = item.Pos, true
		}
		return false
	})
	return
}

// Ascend walks positions in key order, or reversed.
func (x *Index) Ascend(reverse bool, f func(pos int) bool) {
	iterator := func(item indexItem) bool {
		return f(item.Pos)
	}
	if reverse {
		x.tree.Descend(iterator)
		return
	}
	x.tree.Ascend(iterator)
}
