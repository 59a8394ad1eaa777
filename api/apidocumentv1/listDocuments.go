package apidocumentv1

import (
	"context"

	"github.com/fulldump/listdb/utils"
)

func listDocuments(ctx context.Context) ([]*DocumentResponse, error) {

	s := GetServicer(ctx)

	documents := s.ListDocuments()

	result := []*DocumentResponse{}
	for _, name := range utils.GetKeys(documents) {
		result = append(result, newDocumentResponse(name, documents[name]))
	}

	return result, nil
}
