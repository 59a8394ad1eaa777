package apidocumentv1

import (
	"context"

	"github.com/fulldump/box"
)

func dropDocument(ctx context.Context) error {

	s := GetServicer(ctx)

	documentName := box.GetUrlParameter(ctx, "documentName")

	return s.DropDocument(documentName)
}
