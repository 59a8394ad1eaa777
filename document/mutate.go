package document

// Edit is a mutated copy of the lines plus the range that must be persisted.
type Edit struct {
	Lines Lines
	Start int
	End   int
}

// appendObject inserts a complete object block right before the array closing
// marker. The persisted range covers the whole array body.
func appendObject(lines Lines, fields []Field) (*Edit, error) {

	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
	}

	start, end, err := Boundaries(lines)
	if err != nil {
		return nil, err
	}

	block := make([]string, 0, len(fields)+2)
	block = append(block, "{")
	for i, f := range fields {
		block = append(block, f.line(i == len(fields)-1))
	}
	block = append(block, "}")

	edited := lines.Clone()
	edited.Insert(end, block...)

	return &Edit{
		Lines: edited,
		Start: start + 1,
		End:   end + len(block),
	}, nil
}

// removeObject deletes the lines of span and persists the shrunk array body.
func removeObject(lines Lines, span Span) (*Edit, error) {

	edited := lines.Clone()
	edited.Delete(span.Start, span.End+1)

	start, end, err := Boundaries(edited)
	if err != nil {
		return nil, err
	}

	return &Edit{
		Lines: edited,
		Start: start + 1,
		End:   end,
	}, nil
}
