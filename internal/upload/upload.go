// Package upload stores file attachments for file-typed fields and
// returns the reference saved into the record.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader persists one uploaded file and returns its reference path.
type Uploader interface {
	Save(name string, r io.Reader) (string, error)
}

// LocalUploader writes uploads under a directory served as /uploads.
// Stored names are fresh uuids with the original extension, so uploads
// never collide and never carry user-controlled paths.
type LocalUploader struct {
	Dir string
}

func NewLocal(dir string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{Dir: dir}, nil
}

func (u *LocalUploader) Save(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	stored := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(u.Dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + stored, nil
}
