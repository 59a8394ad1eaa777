package document

import "fmt"

// Boundaries returns the indexes of the lines holding the array opening and
// closing markers. Scanning stops at the first closing marker.
func Boundaries(lines Lines) (start, end int, err error) {

	start = -1
	for i, line := range lines {
		line = normalize(line)
		if start < 0 {
			if isArrayOpen(line) {
				start = i
			}
			continue
		}
		if isArrayClose(line) {
			return start, i, nil
		}
	}

	if start < 0 {
		return 0, 0, fmt.Errorf("%w: list opening marker not found", ErrMalformed)
	}
	return start, 0, fmt.Errorf("%w: list closing marker not found", ErrMalformed)
}
