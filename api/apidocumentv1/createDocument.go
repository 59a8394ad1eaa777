package apidocumentv1

import (
	"context"
	"net/http"
)

type createDocumentRequest struct {
	Name string `json:"name"`
}

func createDocument(ctx context.Context, w http.ResponseWriter, input *createDocumentRequest) (*DocumentResponse, error) {

	s := GetServicer(ctx)

	doc, err := s.CreateDocument(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return newDocumentResponse(input.Name, doc), nil
}
