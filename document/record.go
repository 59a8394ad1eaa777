package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// Field is one name/value pair of a record. Value never includes the
// surrounding quotes; String tells whether it is persisted quoted.
type Field struct {
	Name   string
	Value  string
	String bool
}

// line formats the field the way it is persisted inside an object block.
func (f Field) line(last bool) string {
	value := f.Value
	if f.String {
		value = `"` + value + `"`
	}
	l := `"` + f.Name + `" : ` + value
	if !last {
		l += ","
	}
	return l
}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty field name", ErrFields)
	}
	if strings.ContainsAny(f.Name, "\"\\\n\r") {
		return fmt.Errorf("%w: field name %q has forbidden characters", ErrFields, f.Name)
	}
	if f.String {
		if strings.ContainsAny(f.Value, "\"\\\n\r") {
			return fmt.Errorf("%w: field '%s' has forbidden characters", ErrFields, f.Name)
		}
		return nil
	}
	if !isPrimitive(f.Value) {
		return fmt.Errorf("%w: field '%s' is not a primitive value: %q", ErrFields, f.Name, f.Value)
	}
	return nil
}

// isPrimitive reports whether v can be written unquoted on a field line.
func isPrimitive(v string) bool {
	return v != "" && !strings.ContainsAny(v, "\"\\\n\r\t ,{}[]")
}

// Record is one flat object of the list, fields kept in file order.
type Record struct {
	Fields []Field
}

func (r *Record) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (r *Record) Names() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (r *Record) Equal(other *Record) bool {
	if len(r.Fields) != len(other.Fields) {
		return false
	}
	for i := range r.Fields {
		if r.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// Map returns the record as a plain map, mostly useful for filtering. Unquoted
// values are decoded as JSON literals when possible.
func (r *Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Fields))
	for _, f := range r.Fields {
		var value interface{} = f.Value
		if !f.String {
			var decoded interface{}
			if json.Unmarshal([]byte(f.Value), &decoded) == nil {
				value = decoded
			}
		}
		m[f.Name] = value
	}
	return m
}

// MarshalJSON keeps field order. Unquoted values are emitted as raw JSON when
// they are valid literals, otherwise as strings.
func (r *Record) MarshalJSON() ([]byte, error) {

	buf := &bytes.Buffer{}
	e := jsontext.NewEncoder(buf)

	err := e.WriteToken(jsontext.BeginObject)
	if err != nil {
		return nil, err
	}
	for _, f := range r.Fields {
		err = e.WriteToken(jsontext.String(f.Name))
		if err != nil {
			return nil, err
		}
		if !f.String {
			raw := jsontext.Value(f.Value)
			if raw.IsValid() {
				err = e.WriteValue(raw)
				if err != nil {
					return nil, err
				}
				continue
			}
		}
		err = e.WriteToken(jsontext.String(f.Value))
		if err != nil {
			return nil, err
		}
	}
	err = e.WriteToken(jsontext.EndObject)
	if err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		parts = append(parts, f.Name+":"+f.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
