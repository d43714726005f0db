package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PixPMusic/pushmap/internal/mapping"
)

// ErrUnknownFormat is returned for mapping files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown mapping file format")

// FormatFor picks the document format from the file extension.
func FormatFor(path string) (mapping.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return mapping.FormatJSON, nil
	case ".yaml", ".yml":
		return mapping.FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadDocument reads a mapping document. A missing file is reported with an
// error satisfying os.IsNotExist.
func LoadDocument(path string) (mapping.Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return mapping.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return mapping.Document{}, err
	}
	doc, err := mapping.Unmarshal(data, format)
	if err != nil {
		return mapping.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// SaveDocument writes a mapping document, creating the directory if needed.
// The file is replaced atomically so a watcher never sees a partial write.
func SaveDocument(path string, doc mapping.Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := mapping.Marshal(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".pushmap-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
