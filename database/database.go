package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fulldump/listdb/document"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

const Extension = ".json"

var ErrInvalidName = errors.New("invalid document name")
var ErrDocumentExists = errors.New("document already exists")
var ErrDocumentNotFound = errors.New("document not found")

type Config struct {
	Dir       string
	ListField string
	KeyField  string
	Watch     bool
}

type Database struct {
	Config    *Config
	status    string
	mutex     sync.RWMutex
	Documents map[string]*document.Document
	exit      chan struct{}
	stopOnce  sync.Once
}

func NewDatabase(config *Config) *Database { // todo: return error?
	s := &Database{
		Config:    config,
		status:    StatusOpening,
		Documents: map[string]*document.Document{},
		exit:      make(chan struct{}),
	}

	return s
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

func (db *Database) options() *document.Options {
	return &document.Options{
		ListField: db.Config.ListField,
		KeyField:  db.Config.KeyField,
	}
}

func (db *Database) filename(name string) string {
	return path.Join(db.Config.Dir, name+Extension)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return fmt.Errorf("%w '%s'", ErrInvalidName, name)
	}
	return nil
}

func (db *Database) CreateDocument(name string) (*document.Document, error) {

	err := validName(name)
	if err != nil {
		return nil, err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	_, exists := db.Documents[name]
	if exists {
		return nil, fmt.Errorf("%w: '%s'", ErrDocumentExists, name)
	}

	doc, err := document.Open(db.filename(name), db.options())
	if err != nil {
		return nil, err
	}

	db.Documents[name] = doc

	return doc, nil
}

func (db *Database) GetDocument(name string) (*document.Document, bool) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	doc, exists := db.Documents[name]
	return doc, exists
}

// ListDocuments returns a snapshot of the loaded documents.
func (db *Database) ListDocuments() map[string]*document.Document {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make(map[string]*document.Document, len(db.Documents))
	for name, doc := range db.Documents {
		result[name] = doc
	}
	return result
}

func (db *Database) DropDocument(name string) error {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	doc, exists := db.Documents[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrDocumentNotFound, name)
	}

	err := doc.Drop()
	if err != nil {
		return err
	}

	delete(db.Documents, name)

	return nil
}

func (db *Database) Load() error {

	slog.Info("Loading database", "dir", db.Config.Dir)
	dir := db.Config.Dir
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	err = filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if filename != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(filename, Extension) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), Extension)
		if _, exists := db.GetDocument(name); exists {
			// already registered by the watcher
			return nil
		}

		t0 := time.Now()
		doc, err := document.Open(filename, db.options())
		if err != nil {
			slog.Error("open document", "filename", filename, "err", err)
			return nil
		}
		slog.Info("Document loaded", "name", name, "records", doc.Len(), "took", time.Since(t0))

		db.mutex.Lock()
		defer db.mutex.Unlock()
		if _, exists := db.Documents[name]; exists {
			return nil
		}
		db.Documents[name] = doc

		return nil
	})

	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	db.mutex.Lock()
	if db.status == StatusOpening {
		db.status = StatusOperating
	}
	db.mutex.Unlock()

	return nil
}

func (db *Database) Start() error {

	if db.Config.Watch {
		err := db.Watch()
		if err != nil {
			return err
		}
	}

	go db.Load()

	<-db.exit

	return nil
}

// Stop can be called many times. Documents hold no open handles and every
// edit is already on disk, so there is nothing to flush.
func (db *Database) Stop() error {
	db.stopOnce.Do(func() {
		db.setStatus(StatusClosing)
		slog.Info("Closing database", "documents", len(db.ListDocuments()))
		close(db.exit)
	})
	return nil
}
