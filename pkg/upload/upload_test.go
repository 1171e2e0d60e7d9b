package upload_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/upload"
)

var (
	pngData  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpegData = append([]byte("\xff\xd8\xff\xe0"), bytes.Repeat([]byte{1}, 32)...)
	pdfData  = []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n")
	gifData  = []byte("GIF89a\x01\x00\x01\x00")
)

func createFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{w.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1234567, "1.18 MB"},
		{10 << 20, "10 MB"},
		{3 << 30, "3 GB"},
		{5 << 40, "5120 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, upload.FormatSize(tt.in))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		data    []byte
		want    string
		wantErr error
	}{
		{"png", "foto.png", pngData, "image/png", nil},
		{"jpeg", "foto.jpg", jpegData, "image/jpeg", nil},
		{"pdf", "lieferschein.pdf", pdfData, "application/pdf", nil},
		{"gif rejected", "x.gif", gifData, "image/gif", upload.ErrTypeNotAllowed},
		{"renamed text rejected", "fake.png", []byte("hello world"), "text/plain", upload.ErrTypeNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ct, err := upload.Check(createFileHeader(t, tt.file, tt.data))
			assert.Equal(t, tt.want, ct)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		fh := createFileHeader(t, "big.png", pngData)
		fh.Size = upload.MaxSize + 1
		_, err := upload.Check(fh)
		assert.ErrorIs(t, err, upload.ErrFileTooLarge)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		_, err := upload.Check(nil)
		assert.ErrorIs(t, err, upload.ErrNilFileHeader)
	})
}

func TestPreview(t *testing.T) {
	t.Parallel()

	url, err := upload.Preview(createFileHeader(t, "foto.png", pngData))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	_, err = upload.Preview(createFileHeader(t, "plan.pdf", pdfData))
	assert.ErrorIs(t, err, upload.ErrNotImage)
}

func TestList(t *testing.T) {
	t.Parallel()

	l := upload.NewList([]*multipart.FileHeader{
		createFileHeader(t, "a.png", pngData),
		createFileHeader(t, "../../b.pdf", pdfData),
		createFileHeader(t, "c.jpg", jpegData),
	})
	require.Equal(t, 3, l.Len())
	assert.Equal(t, "b.pdf", l.Items()[1].Name)

	l2, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len(), "original list unchanged")
	names := []string{}
	for _, it := range l2.Items() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"a.png", "c.jpg"}, names)
	assert.Equal(t, int64(len(pngData)+len(jpegData)), l2.TotalSize())

	_, err = l2.Remove(5)
	assert.ErrorIs(t, err, upload.ErrIndexOutOfRange)

	assert.Equal(t, "1.5 KB", upload.Item{Size: 1536}.SizeText())
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "passwd", upload.SanitizeFilename("../../../etc/passwd"))
	assert.Equal(t, "file.txt", upload.SanitizeFilename(`C:\Windows\file.txt`))
	assert.Equal(t, "unnamed", upload.SanitizeFilename(".."))
	assert.Equal(t, "unnamed", upload.SanitizeFilename(""))
}

func TestLocalStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	s, err := upload.NewLocalStore(root, "/uploads")
	require.NoError(t, err)

	stored, err := s.Save(ctx, "eintraege/42", createFileHeader(t, "Foto.PNG", pngData))
	require.NoError(t, err)
	assert.Equal(t, "Foto.PNG", stored.Name)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, int64(len(pngData)), stored.Size)
	assert.True(t, strings.HasPrefix(stored.Path, "eintraege/42/"))
	assert.True(t, strings.HasSuffix(stored.Path, ".png"))
	assert.Equal(t, "/uploads/"+stored.Path, stored.URL)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	assert.Equal(t, pngData, data)

	f, err := s.Open(stored.Path)
	require.NoError(t, err)
	_ = f.Close()

	require.NoError(t, s.Delete(stored.Path))
	require.NoError(t, s.Delete(stored.Path))

	_, err = s.Save(ctx, "../outside", createFileHeader(t, "a.png", pngData))
	assert.ErrorIs(t, err, upload.ErrInvalidPath)

	_, err = s.Save(ctx, "x", createFileHeader(t, "a.gif", gifData))
	assert.ErrorIs(t, err, upload.ErrTypeNotAllowed)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Save(cancelled, "x", createFileHeader(t, "a.png", pngData))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = upload.NewLocalStore("", "/")
	assert.ErrorIs(t, err, upload.ErrInvalidStorageRoot)
}
