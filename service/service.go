package service

import (
	"errors"
	"fmt"

	"github.com/fulldump/listdb/database"
	"github.com/fulldump/listdb/document"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateDocument(name string) (*document.Document, error) {

	doc, err := s.db.CreateDocument(name)
	if errors.Is(err, database.ErrDocumentExists) {
		return nil, ErrorDocumentAlreadyExists
	}

	return doc, err
}

func (s *Service) GetDocument(name string) (*document.Document, error) {

	doc, exist := s.db.GetDocument(name)
	if !exist {
		return nil, ErrorDocumentNotFound
	}

	return doc, nil
}

func (s *Service) ListDocuments() map[string]*document.Document {
	return s.db.ListDocuments()
}

func (s *Service) DropDocument(name string) error {

	err := s.db.DropDocument(name)
	if errors.Is(err, database.ErrDocumentNotFound) {
		return ErrorDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("drop document '%s': %w", name, err)
	}

	return nil
}
