// Package sounds maps clip names onto files in the sound asset directory.
package sounds

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PageSize is how many clip names fit on one listing page.
const PageSize = 25

// fallbacks are played when a requested clip does not exist.
var fallbacks = []string{"ilie_cum.mp3", "ilie_ha.mp3"}

// Library resolves clip names against a flat directory of audio files.
type Library struct {
	dir string
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the asset directory.
func (l *Library) Dir() string {
	return l.dir
}

// UnsafeName reports whether a clip name tries to escape the asset
// directory. Such names are rejected before any path is built.
func UnsafeName(name string) bool {
	if name == "" {
		return true
	}
	switch name[0] {
	case '/', '\\', '.', '~':
		return true
	}
	return strings.Contains(name, "..") || strings.ContainsAny(name, "/\\")
}

// Path returns the file path for a clip name. An unknown name falls back
// to a random built-in clip, so a typo still plays something.
func (l *Library) Path(name string) string {
	p := filepath.Join(l.dir, name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(l.dir, fallbacks[rand.IntN(len(fallbacks))])
}

// List returns every clip name in the library, sorted.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading sounds dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Page returns the 1-based page of clip names, and false when the page is
// out of range.
func (l *Library) Page(page int) ([]string, bool) {
	if page < 1 {
		return nil, false
	}
	names, err := l.List()
	if err != nil {
		return nil, false
	}
	start := (page - 1) * PageSize
	if start >= len(names) {
		return nil, false
	}
	end := start + PageSize
	if end > len(names) {
		end = len(names)
	}
	return names[start:end], true
}
