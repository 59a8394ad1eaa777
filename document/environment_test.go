package document

import (
	"os"
	"path/filepath"
	"testing"
)

func Environment(t *testing.T, f func(filename string)) {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "data.json")
	f(filename)
}

func readFile(filename string) string {
	b, _ := os.ReadFile(filename)
	return string(b)
}
