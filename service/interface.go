package service

import (
	"errors"

	"github.com/fulldump/listdb/document"
)

var ErrorDocumentNotFound = errors.New("document not found")
var ErrorDocumentAlreadyExists = errors.New("document already exists")

type Servicer interface { // todo: review naming
	CreateDocument(name string) (*document.Document, error)
	GetDocument(name string) (*document.Document, error)
	ListDocuments() map[string]*document.Document
	DropDocument(name string) error
}
