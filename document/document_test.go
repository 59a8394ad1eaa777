package document

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	. "github.com/fulldump/biff"
)

func fruit(id, item, amount string) Fields {
	return StringFields("id", id, "item", item, "amount", amount)
}

func TestOpen_CreatesFile(t *testing.T) {
	Environment(t, func(filename string) {

		d, err := Open(filename, nil)
		AssertNil(err)

		AssertEqual(d.Len(), 0)
		AssertEqual(readFile(filename), "{\n    \"list\": [\n    ]\n}\n")
	})
}

func TestOpen_InitializesEmptyFile(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte{}, 0666)

		_, err := Open(filename, &Options{ListField: "things"})
		AssertNil(err)
		AssertEqual(readFile(filename), "{\n    \"things\": [\n    ]\n}\n")
	})
}

func TestOpen_ExistingFile(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)

		d, err := Open(filename, nil)
		AssertNil(err)
		AssertEqual(d.Len(), 2)
		AssertEqual(readFile(filename), twoRecords)
	})
}

func TestOpen_Malformed(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte("{\n    \"list\": [\n"), 0666)

		d, err := Open(filename, nil)
		AssertNil(d)
		AssertTrue(errors.Is(err, ErrMalformed))
	})
}

func TestOpen_Directory(t *testing.T) {

	_, err := Open(t.TempDir(), nil)
	AssertTrue(errors.Is(err, ErrIO))
}

func TestDocument_Scenario(t *testing.T) {

	Alternative("Empty document", func(a *A) {

		filename := t.TempDir() + "/data.json"
		d, err := Open(filename, nil)
		AssertNil(err)

		a.Alternative("Append apple", func(a *A) {

			r, err := d.Append(fruit("1", "apple", "3"))
			AssertNil(err)
			AssertEqual(r.String(), "{id:1, item:apple, amount:3}")
			AssertEqual(d.Len(), 1)

			expected := "{\n" +
				"    \"list\": [\n" +
				"        {\n" +
				"            \"id\" : \"1\",\n" +
				"            \"item\" : \"apple\",\n" +
				"            \"amount\" : \"3\"\n" +
				"        }\n" +
				"    ]\n" +
				"}\n"
			AssertEqual(readFile(filename), expected)

			a.Alternative("Append pear", func(a *A) {

				_, err := d.Append(fruit("2", "pear", "5"))
				AssertNil(err)

				records := d.Records()
				AssertEqual(len(records), 2)
				AssertEqual(records[0].String(), "{id:1, item:apple, amount:3}")
				AssertEqual(records[1].String(), "{id:2, item:pear, amount:5}")

				a.Alternative("Remove 1", func(a *A) {

					removed, err := d.Remove(1)
					AssertNil(err)
					AssertEqual(removed.String(), "{id:1, item:apple, amount:3}")

					records := d.Records()
					AssertEqual(len(records), 1)
					AssertEqual(records[0].String(), "{id:2, item:pear, amount:5}")

					a.Alternative("Remove 1 again", func(a *A) {

						before := readFile(filename)

						_, err := d.Remove(1)
						AssertTrue(errors.Is(err, ErrKeyNotFound))
						AssertEqual(d.Len(), 1)
						AssertEqual(readFile(filename), before)
					})

					a.Alternative("Reload from disk", func(a *A) {

						AssertNil(d.Reload())
						AssertEqual(len(d.Records()), 1)
						AssertEqual(d.Records()[0].String(), "{id:2, item:pear, amount:5}")
					})
				})

				a.Alternative("Separator between objects", func(a *A) {

					expected := "{\n" +
						"    \"list\": [\n" +
						"        {\n" +
						"            \"id\" : \"1\",\n" +
						"            \"item\" : \"apple\",\n" +
						"            \"amount\" : \"3\"\n" +
						"        },\n" +
						"        {\n" +
						"            \"id\" : \"2\",\n" +
						"            \"item\" : \"pear\",\n" +
						"            \"amount\" : \"5\"\n" +
						"        }\n" +
						"    ]\n" +
						"}\n"
					AssertEqual(readFile(filename), expected)
				})

				a.Alternative("Clear", func(a *A) {

					AssertNil(d.Clear())
					AssertEqual(d.Len(), 0)
					AssertEqual(readFile(filename), "{\n    \"list\": [\n    ]\n}\n")
				})
			})
		})

		a.Alternative("Remove on empty document", func(a *A) {

			_, err := d.Remove(1)
			AssertTrue(errors.Is(err, ErrKeyNotFound))
		})

		a.Alternative("Append empty object", func(a *A) {

			r, err := d.Append(Fields{})
			AssertNil(err)
			AssertEqual(len(r.Fields), 0)
			AssertEqual(d.Len(), 1)
		})
	})
}

func TestDocument_RoundTrip(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)
		d, _ := Open(filename, nil)

		fields := Fields{
			{Name: "id", Value: "3"},
			{Name: "item", Value: "blood orange", String: true},
			{Name: "ripe", Value: "true"},
			{Name: "note", Value: "null"},
		}
		_, err := d.Append(fields)
		AssertNil(err)

		fresh, err := Open(filename, nil)
		AssertNil(err)

		records := fresh.Records()
		AssertEqual(len(records), 3)
		AssertEqual(records[2].Fields, []Field(fields))
	})
}

func TestDocument_IdempotentReload(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)
		d, _ := Open(filename, nil)

		first := d.Records()
		AssertNil(d.Reload())
		second := d.Records()

		AssertEqual(len(first), len(second))
		for i := range first {
			AssertTrue(first[i].Equal(second[i]))
		}
	})
}

func TestDocument_AppendPreservesRecords(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)
		d, _ := Open(filename, nil)
		before := d.Records()

		_, err := d.Append(fruit("9", "plum", "1"))
		AssertNil(err)

		after := d.Records()
		AssertEqual(len(after), len(before)+1)
		for i := range before {
			AssertTrue(after[i].Equal(before[i]))
		}
	})
}

func TestDocument_RemoveMatchesWholeKey(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		d.Append(fruit("12", "kiwi", "1"))
		d.Append(fruit("2", "melon 12", "12"))
		d.Append(fruit("21", "lime", "2"))

		removed, err := d.Remove(2)
		AssertNil(err)
		AssertEqual(removed.String(), "{id:2, item:melon 12, amount:12}")

		records := d.Records()
		AssertEqual(len(records), 2)
		AssertEqual(records[0].String(), "{id:12, item:kiwi, amount:1}")
		AssertEqual(records[1].String(), "{id:21, item:lime, amount:2}")
	})
}

func TestDocument_RemoveWithNaNKeyPresent(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		for _, id := range []string{"1", "2", "NaN", "3", "4"} {
			_, err := d.Append(StringFields("id", id))
			AssertNil(err)
		}

		for _, key := range []int{1, 3, 4} {
			_, found := d.Lookup(key)
			AssertTrue(found)
		}

		removed, err := d.Remove(2)
		AssertNil(err)
		AssertEqual(removed.String(), "{id:2}")
		AssertEqual(d.Len(), 4)

		_, found := d.Lookup(2)
		AssertFalse(found)
	})
}

func TestDocument_RemoveRecordsOfAnySize(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		d.Append(StringFields("id", "1"))
		d.Append(StringFields("id", "2", "a", "x", "b", "y", "c", "z", "d", "w"))
		d.Append(StringFields("id", "3", "a", "x"))

		_, err := d.Remove(2)
		AssertNil(err)

		fresh, _ := Open(filename, nil)
		records := fresh.Records()
		AssertEqual(len(records), 2)
		AssertEqual(records[0].String(), "{id:1}")
		AssertEqual(records[1].String(), "{id:3, a:x}")
	})
}

func TestDocument_RemoveDuplicatedKeyTakesLast(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		d.Append(StringFields("id", "1", "name", "first"))
		d.Append(StringFields("id", "1", "name", "second"))

		removed, err := d.Remove(1)
		AssertNil(err)
		AssertEqual(removed.String(), "{id:1, name:second}")
		AssertEqual(d.Len(), 1)
	})
}

func TestDocument_CustomKeyField(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, &Options{KeyField: "code"})
		d.Append(StringFields("code", "10", "name", "ten"))

		r, found := d.Lookup(10)
		AssertTrue(found)
		AssertEqual(r.String(), "{code:10, name:ten}")

		_, found = d.Lookup(11)
		AssertFalse(found)
	})
}

func TestDocument_AppendRejectsBadFields(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		before := readFile(filename)

		_, err := d.Append(Fields{{Name: "id", Value: "1 2"}})
		AssertTrue(errors.Is(err, ErrFields))

		_, err = d.Append(Fields{{Name: "", Value: "x", String: true}})
		AssertTrue(errors.Is(err, ErrFields))

		_, err = d.Append(Fields{{Name: "quote", Value: `say "hi"`, String: true}})
		AssertTrue(errors.Is(err, ErrFields))

		AssertEqual(d.Len(), 0)
		AssertEqual(readFile(filename), before)
	})
}

type brokenFielder struct{}

func (brokenFielder) Fields() ([]Field, error) {
	return nil, errors.New("field access denied")
}

func TestDocument_AppendPropagatesFielderError(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)

		_, err := d.Append(brokenFielder{})
		AssertTrue(errors.Is(err, ErrFields))
		AssertEqual(d.Len(), 0)
	})
}

type failingWriter struct {
	*FileWriter
}

func (w failingWriter) ReplaceRange(lines Lines, start, end int) error {
	return ErrIO
}

func TestDocument_WriterFailureKeepsState(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)
		d, err := Open(filename, &Options{
			Writer: failingWriter{NewFileWriter(filename, "list")},
		})
		AssertNil(err)
		lines := d.Lines()

		_, err = d.Append(fruit("3", "fig", "1"))
		AssertTrue(errors.Is(err, ErrIO))

		_, err = d.Remove(1)
		AssertTrue(errors.Is(err, ErrIO))

		AssertEqual(d.Len(), 2)
		AssertEqual(d.Lines(), lines)
		AssertEqual(readFile(filename), twoRecords)
	})
}

func TestDocument_ReloadFailureKeepsState(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte(twoRecords), 0666)
		d, _ := Open(filename, nil)

		os.WriteFile(filename, []byte("garbage"), 0666)
		err := d.Reload()
		AssertTrue(errors.Is(err, ErrMalformed))
		AssertEqual(d.Len(), 2)

		os.Remove(filename)
		err = d.Reload()
		AssertTrue(errors.Is(err, ErrIO))
		AssertEqual(d.Len(), 2)
	})
}

func TestDocument_Ascend(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		d.Append(StringFields("id", "10"))
		d.Append(StringFields("id", "9"))
		d.Append(StringFields("id", "abc"))
		d.Append(StringFields("name", "no key"))
		d.Append(StringFields("id", "100"))

		ids := []string{}
		d.Ascend(false, func(r *Record) bool {
			id, _ := r.Get("id")
			ids = append(ids, id)
			return true
		})
		AssertEqual(ids, []string{"9", "10", "100", "abc"})

		ids = []string{}
		d.Ascend(true, func(r *Record) bool {
			id, _ := r.Get("id")
			ids = append(ids, id)
			return len(ids) < 2
		})
		AssertEqual(ids, []string{"abc", "100"})
	})
}

func TestDocument_Drop(t *testing.T) {
	Environment(t, func(filename string) {

		d, _ := Open(filename, nil)
		d.Append(fruit("1", "apple", "3"))

		AssertNil(d.Drop())
		AssertEqual(d.Len(), 0)

		_, err := os.Stat(filename)
		AssertTrue(os.IsNotExist(err))
	})
}

func TestRecord_MarshalJSON(t *testing.T) {

	r := &Record{Fields: []Field{
		{Name: "id", Value: "2"},
		{Name: "item", Value: "pear", String: true},
		{Name: "odd", Value: "not-json"},
	}}

	b, err := json.Marshal(r)
	AssertNil(err)
	AssertEqual(string(b), `{"id":2,"item":"pear","odd":"not-json"}`)
}

func TestFieldsFromJSON(t *testing.T) {

	fields, err := FieldsFromJSON([]byte(`{"id": 4, "item": "fig", "ok": true, "n": null, "price": 1.5}`))
	AssertNil(err)
	AssertEqual(fields, Fields{
		{Name: "id", Value: "4"},
		{Name: "item", Value: "fig", String: true},
		{Name: "ok", Value: "true"},
		{Name: "n", Value: "null"},
		{Name: "price", Value: "1.5"},
	})
}

func TestFieldsFromJSON_Rejects(t *testing.T) {

	for _, input := range []string{
		`[1, 2]`,
		`{"nested": {"a": 1}}`,
		`{"list": [1]}`,
		`{"a": 1} {"b": 2}`,
		`{"a": `,
	} {
		_, err := FieldsFromJSON([]byte(input))
		AssertTrue(errors.Is(err, ErrFields))
	}
}

func TestRecord_Map(t *testing.T) {

	r := &Record{Fields: []Field{
		{Name: "id", Value: "2"},
		{Name: "item", Value: "pear", String: true},
		{Name: "ok", Value: "false"},
		{Name: "odd", Value: "not-json"},
	}}

	AssertEqual(r.Map(), map[string]interface{}{
		"id":   float64(2),
		"item": "pear",
		"ok":   false,
		"odd":  "not-json",
	})
}
