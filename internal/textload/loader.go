// Package textload turns document files into plain text. It reads .txt
// files directly, extracts text from PDFs, and flattens HTML to its visible
// text, caching the result keyed by path and modification time.
package textload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldsift/fieldsift/internal/cache"
)

// Loader converts document files into plain text
type Loader struct {
	cache cache.Cache
	log   *logrus.Logger
}

// NewLoader creates a loader. The cache may be nil, in which case every
// Load re-extracts.
func NewLoader(c cache.Cache, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	return &Loader{cache: c, log: log}
}

// Load returns the plain text of the document at path
func (l *Loader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat document: %w", err)
	}

	key := cache.DocumentKey(path, info.ModTime())
	if l.cache != nil {
		if text, found := l.cache.Get(key); found {
			l.log.WithField("path", path).Debug("document text served from cache")
			return text, nil
		}
	}

	text, err := l.extract(path)
	if err != nil {
		return "", err
	}

	if l.cache != nil {
		if err := l.cache.Set(key, text, 0); err != nil {
			l.log.WithError(err).WithField("path", path).Warn("failed to cache document text")
		}
	}
	return text, nil
}

func (l *Loader) extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return extractHTML(string(data))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return string(data), nil
	}
}

// supportedExtensions lists the file types ListDocuments picks up
var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".pdf":  true,
	".html": true,
	".htm":  true,
}

// ListDocuments returns the supported document files directly under dir,
// sorted by name so batch runs are deterministic.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var docs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			docs = append(docs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(docs)
	return docs, nil
}
