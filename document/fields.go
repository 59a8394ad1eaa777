package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// Fielder supplies the ordered fields of a new record. Callers decide what
// their fields are; nothing is inspected at runtime.
type Fielder interface {
	Fields() ([]Field, error)
}

// Fields is the trivial Fielder.
type Fields []Field

func (f Fields) Fields() ([]Field, error) {
	return f, nil
}

// StringFields builds string typed fields from name/value pairs.
func StringFields(pairs ...string) Fields {
	fields := Fields{}
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, Field{Name: pairs[i], Value: pairs[i+1], String: true})
	}
	return fields
}

// FieldsFromJSON reads a flat JSON object keeping the order of its members.
// Nested objects and arrays are rejected.
func FieldsFromJSON(data []byte) (Fields, error) {

	d := jsontext.NewDecoder(bytes.NewReader(data))

	t, err := d.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: read object: %w", ErrFields, err)
	}
	if t.Kind() != '{' {
		return nil, fmt.Errorf("%w: expected object, got '%s'", ErrFields, t.Kind())
	}

	fields := Fields{}
	for d.PeekKind() != '}' {
		name, err := d.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("%w: read name: %w", ErrFields, err)
		}

		value, err := d.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("%w: read value of '%s': %w", ErrFields, name.String(), err)
		}

		field := Field{Name: name.String()}
		switch value.Kind() {
		case '"':
			t, err := jsontext.NewDecoder(bytes.NewReader(value)).ReadToken()
			if err != nil {
				return nil, fmt.Errorf("%w: decode '%s': %w", ErrFields, field.Name, err)
			}
			field.Value = t.String()
			field.String = true
		case '0', 't', 'f', 'n':
			field.Value = string(value)
		default:
			return nil, fmt.Errorf("%w: field '%s' must be a string or a primitive", ErrFields, field.Name)
		}
		fields = append(fields, field)
	}

	_, err = d.ReadToken() // closing brace
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFields, err)
	}

	_, err = d.ReadToken()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrFields)
	}

	return fields, nil
}
