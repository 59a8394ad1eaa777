package apidocumentv1

import (
	"encoding/json"
	"fmt"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/listdb/document"
)

type traverseParams struct {
	Filter  map[string]interface{} `json:"filter"`
	Skip    int64                  `json:"skip"`
	Limit   int64                  `json:"limit"`
	Reverse bool                   `json:"reverse"`
}

func parseTraverseParams(input []byte) (*traverseParams, error) {
	params := &traverseParams{
		Filter: map[string]interface{}{},
		Skip:   0,
		Limit:  1,
	}
	err := json.Unmarshal(input, &params)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// walker applies filter, skip and limit. It returns false when the traversal
// must stop.
func (p *traverseParams) walker(f func(r *document.Record) error, result *error) func(r *document.Record) bool {

	hasFilter := len(p.Filter) > 0
	skip := p.Skip
	limit := p.Limit

	return func(r *document.Record) bool {

		if limit == 0 {
			return false
		}

		if hasFilter {
			match, err := connor.Match(p.Filter, r.Map())
			if err != nil {
				*result = fmt.Errorf("match: %w", err)
				return false
			}
			if !match {
				return true
			}
		}

		if skip > 0 {
			skip--
			return true
		}

		limit--
		err := f(r)
		if err != nil {
			*result = fmt.Errorf("write record: %w", err)
			return false
		}
		return limit != 0
	}
}

func traverseFullscan(input []byte, doc *document.Document, f func(r *document.Record) error) error {

	params, err := parseTraverseParams(input)
	if err != nil {
		return err
	}

	var result error
	walk := params.walker(f, &result)

	records := doc.Records()
	if params.Reverse {
		for i := len(records) - 1; i >= 0; i-- {
			if !walk(records[i]) {
				break
			}
		}
		return result
	}

	for _, r := range records {
		if !walk(r) {
			break
		}
	}

	return result
}

func traverseKey(input []byte, doc *document.Document, f func(r *document.Record) error) error {

	params, err := parseTraverseParams(input)
	if err != nil {
		return err
	}

	var result error
	doc.Ascend(params.Reverse, params.walker(f, &result))

	return result
}
