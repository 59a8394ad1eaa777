package apidocumentv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/listdb/service"
)

func BuildV1Document(v1 *box.R, s service.Servicer) *box.R {

	documents := v1.Resource("/documents").
		WithActions(
			box.Get(listDocuments),
			box.Post(createDocument),
		)

	v1.Resource("/documents/{documentName}").
		WithActions(
			box.Get(getDocument),
			box.ActionPost(appendRecord).WithName("append"),
			box.ActionPost(removeRecord).WithName("remove"),
			box.ActionPost(find),
			box.ActionPost(reload),
			box.ActionPost(clearDocument).WithName("clear"),
			box.ActionPost(dropDocument).WithName("drop"),
		)

	return documents
}
