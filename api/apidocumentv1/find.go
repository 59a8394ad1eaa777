package apidocumentv1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/box"
	"github.com/tidwall/gjson"

	"github.com/fulldump/listdb/document"
	"github.com/fulldump/listdb/utils"
)

var ErrBadMode = errors.New("bad mode")

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(requestBody))) == 0 {
		requestBody = []byte("{}")
	}

	mode := "fullscan"
	if m := gjson.GetBytes(requestBody, "mode"); m.Exists() {
		mode = m.String()
	}

	f, exist := findModes[mode]
	if !exist {
		return fmt.Errorf("%w '%s', must be [%s]", ErrBadMode, mode, strings.Join(utils.GetKeys(findModes), "|"))
	}

	s := GetServicer(ctx)
	documentName := box.GetUrlParameter(ctx, "documentName")
	doc, err := s.GetDocument(documentName)
	if err != nil {
		return err
	}

	return f(requestBody, doc, w)
}

var findModes = map[string]func(input []byte, doc *document.Document, w http.ResponseWriter) error{
	"fullscan": func(input []byte, doc *document.Document, w http.ResponseWriter) error {
		return traverseFullscan(input, doc, writeRecord(w))
	},
	"key": func(input []byte, doc *document.Document, w http.ResponseWriter) error {
		return traverseKey(input, doc, writeRecord(w))
	},
}

func writeRecord(w http.ResponseWriter) func(r *document.Record) error {
	e := json.NewEncoder(w)
	return func(r *document.Record) error {
		return e.Encode(r)
	}
}
