package apidocumentv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/listdb/document"
)

type removeRequest struct {
	Key int `json:"key"`
}

func removeRecord(ctx context.Context, input *removeRequest) (*document.Record, error) {

	s := GetServicer(ctx)
	documentName := box.GetUrlParameter(ctx, "documentName")
	doc, err := s.GetDocument(documentName)
	if err != nil {
		return nil, err
	}

	return doc.Remove(input.Key)
}
