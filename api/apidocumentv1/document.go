package apidocumentv1

import (
	"github.com/fulldump/listdb/document"
)

type DocumentResponse struct {
	Name     string `json:"name"`
	Total    int    `json:"total"`
	KeyField string `json:"key_field"`
}

func newDocumentResponse(name string, doc *document.Document) *DocumentResponse {
	return &DocumentResponse{
		Name:     name,
		Total:    doc.Len(),
		KeyField: doc.KeyField(),
	}
}
