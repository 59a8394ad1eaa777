package apidocumentv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/listdb/document"
	"github.com/fulldump/listdb/service"
)

// appendRecord adds the posted flat object as the last record. The document is
// created on first use.
func appendRecord(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	fields, err := document.FieldsFromJSON(body)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	documentName := box.GetUrlParameter(ctx, "documentName")
	doc, err := s.GetDocument(documentName)
	if err == service.ErrorDocumentNotFound {
		doc, err = s.CreateDocument(documentName)
		if err == service.ErrorDocumentAlreadyExists {
			// created by a concurrent request
			doc, err = s.GetDocument(documentName)
		}
	}
	if err != nil {
		return err
	}

	record, err := doc.Append(fields)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(record)
}
