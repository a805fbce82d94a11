package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"), make([]byte, 32)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"), make([]byte, 32)...)
	webpBytes = append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a\x01\x00\x01\x00"), make([]byte, 32)...)
)

func newTestStore(t *testing.T) *Store {
	s := NewStore(t.TempDir(), 1024, []string{"png", "jpg", ".JPEG", "webp", "exe"})
	s.now = func() time.Time { return time.Date(2026, time.March, 4, 10, 11, 12, 0, time.UTC) }
	return s
}

func TestValidate(t *testing.T) {
	s := newTestStore(t)
	tables := []struct {
		test     string
		filename string
		content  []byte
		err      error
	}{
		{"png", "cat.png", pngBytes, nil},
		{"upper case extension", "CAT.PNG", pngBytes, nil},
		{"jpg", "cat.jpg", jpegBytes, nil},
		{"jpeg", "cat.jpeg", jpegBytes, nil},
		{"webp", "cat.webp", webpBytes, nil},
		{"no extension", "cat", pngBytes, ErrExtension},
		{"unknown extension", "cat.gif", gifBytes, ErrExtension},
		{"extension without image type", "cat.exe", pngBytes, ErrExtension},
		{"script renamed to png", "shell.png", []byte("<?php system($_GET['c']); ?>"), ErrContent},
		{"gif renamed to jpg", "cat.jpg", gifBytes, ErrContent},
		{"png claiming jpeg", "cat.jpg", pngBytes, ErrContent},
		{"empty", "cat.png", []byte{}, ErrEmpty},
		{"too large", "cat.png", append(append([]byte{}, pngBytes...), make([]byte, 2048)...), ErrTooLarge},
	}
	for _, table := range tables {
		data, _, err := s.Validate(table.filename, bytes.NewReader(table.content))
		if table.err != nil {
			require.ErrorIs(t, err, table.err, table.test)
			require.Nil(t, data, table.test)
			continue
		}
		require.NoError(t, err, table.test)
		require.Equal(t, table.content, data, table.test)
	}
}

func TestSave(t *testing.T) {
	s := newTestStore(t)
	rel, size, err := s.Save("sightings", "../../etc/cat.PNG", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.Equal(t, int64(len(pngBytes)), size)
	require.Regexp(t, regexp.MustCompile(`^uploads/sightings/2026/03/20260304_101112_[0-9a-f]{8}\.png$`), rel)

	written, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	require.Equal(t, pngBytes, written)

	// a second upload in the same second gets its own name
	rel2, _, err := s.Save("sightings", "cat.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.NotEqual(t, rel, rel2)

	_, _, err = s.Save("sightings", "cat.png", strings.NewReader("not an image"))
	require.ErrorIs(t, err, ErrContent)
}

func TestSaveWriteFailureRemovesFile(t *testing.T) {
	s := newTestStore(t)
	var created string
	// read only handle so the copy fails after the file exists
	s.create = func(name string) (*os.File, error) {
		created = name
		return os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_RDONLY, 0660)
	}
	_, _, err := s.Save("sightings", "cat.png", bytes.NewReader(pngBytes))
	require.ErrorContains(t, err, "writing upload file")

	require.NotEmpty(t, created)
	_, err = os.Stat(created)
	require.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(filepath.Dir(created))
	require.NoError(t, err)
	require.Empty(t, entries)
}
