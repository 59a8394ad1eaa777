package apidocumentv1

import (
	"context"

	"github.com/fulldump/box"
)

func reload(ctx context.Context) (*DocumentResponse, error) {

	s := GetServicer(ctx)
	documentName := box.GetUrlParameter(ctx, "documentName")
	doc, err := s.GetDocument(documentName)
	if err != nil {
		return nil, err
	}

	err = doc.Reload()
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(documentName, doc), nil
}

func clearDocument(ctx context.Context) (*DocumentResponse, error) {

	s := GetServicer(ctx)
	documentName := box.GetUrlParameter(ctx, "documentName")
	doc, err := s.GetDocument(documentName)
	if err != nil {
		return nil, err
	}

	err = doc.Clear()
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(documentName, doc), nil
}
