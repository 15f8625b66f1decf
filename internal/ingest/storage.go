package ingest

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes uploaded documents under a single directory, prefixing each
// stored name with an upload timestamp so originals never collide.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Save persists the uploaded file and returns the stored filename and its
// full path. Stored names are "<YYYYMMDDHHMMSS>_<original>".
func (s *Store) Save(file *multipart.FileHeader) (string, string, error) {
	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), sanitize(file.Filename))
	filePath := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return name, filePath, nil
}

func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

func (s *Store) Delete(filename string) error {
	if err := os.Remove(s.Path(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// OriginalName strips the timestamp prefix from a stored filename so the
// download endpoint can hand back the name the candidate uploaded.
func OriginalName(stored string) string {
	if i := strings.Index(stored, "_"); i == 14 {
		if _, err := time.Parse("20060102150405", stored[:14]); err == nil {
			return stored[15:]
		}
	}
	return stored
}

// sanitize keeps only the base name and replaces path-hostile characters.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
