/*
Package uploads validates and stores user submitted sighting images.

Extensions are only a first filter; the stored bytes must sniff as the image
type the extension claims.
*/
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrExtension = errors.New("file extension not allowed")
	ErrContent   = errors.New("file content is not an allowed image")
	ErrTooLarge  = errors.New("file too large")
	ErrEmpty     = errors.New("file is empty")
)

// mime type each extension must sniff as
var extensionMimes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
}

type Store struct {
	root     string
	maxBytes int64
	allowed  map[string]string
	now      func() time.Time
	create   func(name string) (*os.File, error)
}

// NewStore writes images below root. Extensions without a known image type are ignored.
func NewStore(root string, maxBytes int64, allowedExtensions []string) *Store {
	allowed := map[string]string{}
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if mime, ok := extensionMimes[ext]; ok {
			allowed[ext] = mime
		}
	}
	return &Store{root: root, maxBytes: maxBytes, allowed: allowed, now: time.Now, create: createExclusive}
}

// Root is the folder stored paths are relative to.
func (s *Store) Root() string { return s.root }

// Extension returns the lower cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Validate reads the whole image and checks it against the claimed filename.
func (s *Store) Validate(filename string, r io.Reader) ([]byte, string, error) {
	ext := Extension(filename)
	want, ok := s.allowed[ext]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrExtension, ext)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return nil, "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxBytes)
	}
	detected := mimetype.Detect(data)
	if !detected.Is(want) {
		return nil, "", fmt.Errorf("%w: .%s file sniffed as %s", ErrContent, ext, detected.String())
	}
	return data, ext, nil
}

func createExclusive(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0660)
}

// Save validates then writes the image under <subfolder>/YYYY/MM, returning its path relative to root.
func (s *Store) Save(subfolder string, filename string, r io.Reader) (string, int64, error) {
	data, ext, err := s.Validate(filename, r)
	if err != nil {
		return "", 0, err
	}
	now := s.now()
	rel := path.Join("uploads", subfolder, now.Format("2006"), now.Format("01"))
	dir := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0770); err != nil {
		return "", 0, fmt.Errorf("creating upload dir: %w", err)
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := fmt.Sprintf("%s_%s.%s", now.Format("20060102_150405"), id, ext)
	full := filepath.Join(dir, name)
	f, err := s.create(full)
	if err != nil {
		return "", 0, fmt.Errorf("creating upload file: %w", err)
	}
	n, err := io.Copy(f, bytes.NewReader(data))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(full); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			return "", 0, fmt.Errorf("writing upload file: %w (cleanup: %v)", err, rerr)
		}
		return "", 0, fmt.Errorf("writing upload file: %w", err)
	}
	return path.Join(rel, name), n, nil
}
