package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Stored describes a saved upload.
type Stored struct {
	Name        string // original, sanitized file name
	Path        string // path relative to the storage root
	URL         string
	Size        int64
	ContentType string
}

// LocalStore saves checked uploads below a root directory.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates root if needed. baseURL prefixes public URLs.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if root == "" {
		return nil, ErrInvalidStorageRoot
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStorageRoot, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStorageRoot, err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{root: abs, baseURL: baseURL}, nil
}

// Save checks fh and writes it into dir under a unique name. A cancelled
// context aborts the copy and removes the partial file.
func (s *LocalStore) Save(ctx context.Context, dir string, fh *multipart.FileHeader) (*Stored, error) {
	ct, err := Check(fh)
	if err != nil {
		return nil, err
	}

	name := SanitizeFilename(fh.Filename)
	rel := filepath.ToSlash(filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(name))))
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToWriteFile, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToWriteFile, err)
	}

	n, err := io.Copy(dst, &ctxReader{ctx: ctx, r: io.LimitReader(src, MaxSize+1)})
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(abs)
		return nil, fmt.Errorf("%w: %w", ErrFailedToWriteFile, err)
	}

	return &Stored{
		Name:        name,
		Path:        rel,
		URL:         s.baseURL + rel,
		Size:        n,
		ContentType: ct,
	}, nil
}

// Open returns the stored file at rel.
func (s *LocalStore) Open(rel string) (*os.File, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// Delete removes the stored file at rel.
func (s *LocalStore) Delete(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve confines rel to the storage root.
func (s *LocalStore) resolve(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if abs != s.root && !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return abs, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
