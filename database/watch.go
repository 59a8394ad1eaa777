package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/fulldump/listdb/document"
)

// Watch reloads documents edited by other programs and registers new
// documents dropped into the directory. It runs until Stop.
func (db *Database) Watch() error {

	err := os.MkdirAll(db.Config.Dir, 0755)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	if err := w.Add(db.Config.Dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", db.Config.Dir, err)
	}

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-db.exit:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				db.handleEvent(event)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("watching data directory", "err", err)
			}
		}
	}()

	return nil
}

func (db *Database) handleEvent(event fsnotify.Event) {

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, Extension) || strings.HasPrefix(base, ".") {
		return
	}
	name := strings.TrimSuffix(base, Extension)

	doc, exists := db.GetDocument(name)
	if exists {
		err := doc.Reload()
		if err != nil {
			slog.Warn("reload document", "name", name, "err", err)
			return
		}
		slog.Debug("document reloaded", "name", name, "records", doc.Len())
		return
	}

	if validName(name) != nil {
		return
	}

	// wait for content, an empty file would be initialized under its writer
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.Documents[name]; exists {
		return
	}

	doc, err = document.Open(event.Name, db.options())
	if err != nil {
		slog.Warn("open document", "filename", event.Name, "err", err)
		return
	}
	db.Documents[name] = doc
	slog.Info("Document discovered", "name", name, "records", doc.Len())
}
