// Package storage keeps uploaded evidence files on local disk.
//
// Files are stored under a single uploads directory with a generated
// name. Callers receive an opaque reference (the stored filename) that
// is safe to embed in URLs and to persist alongside a submission.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// Extensions accepted for evidence uploads.
var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// DefaultDir is the uploads directory used when none is configured.
const DefaultDir = "uploads"

// EvidenceStore saves and serves evidence files from a local directory.
type EvidenceStore struct {
	dir string
}

// NewEvidenceStore creates the uploads directory if needed and returns
// a store rooted at dir.
func NewEvidenceStore(dir string) (*EvidenceStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, shared.WrapError("storage", "NewEvidenceStore", shared.ErrStoreUnavailable,
			fmt.Sprintf("failed to create uploads directory %q", dir), err)
	}
	return &EvidenceStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *EvidenceStore) Dir() string {
	return s.dir
}

// IsAllowed reports whether the original filename carries an accepted
// evidence extension.
func IsAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ok
}

// Save writes the uploaded content to disk and returns the stored
// filename. The original name only contributes its extension; the rest
// of the stored name is generated, so path traversal in user input
// cannot escape the uploads directory.
func (s *EvidenceStore) Save(originalName string, r io.Reader) (string, error) {
	if !IsAllowed(originalName) {
		return "", shared.ErrEvidenceRejected
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", shared.WrapError("storage", "Save", shared.ErrStoreUnavailable,
			"failed to create evidence file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", shared.WrapError("storage", "Save", shared.ErrStoreUnavailable,
			"failed to write evidence file", err)
	}
	return name, nil
}

// Open returns a reader for a previously stored file. The reference
// must be a bare filename as returned by Save; anything that resolves
// outside the uploads directory is treated as missing.
func (s *EvidenceStore) Open(reference string) (*os.File, error) {
	if reference == "" || filepath.Base(reference) != reference {
		return nil, shared.ErrEvidenceNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, reference))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, shared.ErrEvidenceNotFound
		}
		return nil, shared.WrapError("storage", "Open", shared.ErrStoreUnavailable,
			"failed to open evidence file", err)
	}
	return f, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *EvidenceStore) Remove(reference string) error {
	if reference == "" || filepath.Base(reference) != reference {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, reference)); err != nil && !os.IsNotExist(err) {
		return shared.WrapError("storage", "Remove", shared.ErrStoreUnavailable,
			"failed to remove evidence file", err)
	}
	return nil
}
