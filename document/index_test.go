package document

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestIndex_Last(t *testing.T) {

	index := NewIndex("id", []*Record{
		{Fields: StringFields("id", "1")},
		{Fields: StringFields("id", "1.0")},
		{Fields: StringFields("name", "x")},
		{Fields: StringFields("id", "1")},
		{Fields: StringFields("id", "b")},
	})

	AssertEqual(index.Len(), 4)

	pos, found := index.Last("1")
	AssertTrue(found)
	AssertEqual(pos, 3)

	pos, found = index.Last("1.0")
	AssertTrue(found)
	AssertEqual(pos, 1)

	_, found = index.Last("2")
	AssertFalse(found)

	_, found = index.Last("a")
	AssertFalse(found)
}

func TestIndex_NaNIsText(t *testing.T) {

	index := NewIndex("id", []*Record{
		{Fields: StringFields("id", "1")},
		{Fields: StringFields("id", "2")},
		{Fields: StringFields("id", "NaN")},
		{Fields: StringFields("id", "3")},
		{Fields: StringFields("id", "4")},
	})

	AssertEqual(index.Len(), 5)

	for key, expected := range map[string]int{"1": 0, "2": 1, "NaN": 2, "3": 3, "4": 4} {
		pos, found := index.Last(key)
		AssertTrue(found)
		AssertEqual(pos, expected)
	}

	keys := []int{}
	index.Ascend(false, func(pos int) bool {
		keys = append(keys, pos)
		return true
	})
	AssertEqual(keys, []int{0, 1, 3, 4, 2})
}
