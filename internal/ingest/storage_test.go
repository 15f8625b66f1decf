package ingest

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["resume"][0]
}

func TestStoreSaveAndDelete(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	stored, path, err := store.Save(uploadHeader(t, "resume.txt", "Jane Doe\njane@example.com"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(stored, "_resume.txt") {
		t.Errorf("stored name = %q, want timestamp prefix before resume.txt", stored)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "Jane Doe\njane@example.com" {
		t.Errorf("stored content = %q", data)
	}

	// failed ingests hand the stored name back to Delete so no orphan file
	// outlives its candidate row
	if err := store.Delete(stored); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after Delete: %v", err)
	}
}

func TestStoreSaveSanitizesName(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	stored, path, err := store.Save(uploadHeader(t, "../../etc/pass wd.pdf", "x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.ContainsAny(stored, "/\\ ") {
		t.Errorf("stored name %q contains path or space characters", stored)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("stored outside upload dir: %q", path)
	}
}
