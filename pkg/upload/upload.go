package upload

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// MaxSize is the largest accepted upload.
const MaxSize int64 = 10 << 20

// HintText describes the accepted uploads to the user.
const HintText = "Unterstützte Formate: JPG, PNG, PDF (max. 10MB)"

// Accepted lists the content types accepted for upload.
var Accepted = []string{"image/jpeg", "image/png", "application/pdf"}

// DetectType sniffs the content type from the first 512 bytes of the file.
// The extension is never trusted.
func DetectType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%w: %w", ErrFailedToReadFile, err)
	}
	ct, _, _ := strings.Cut(http.DetectContentType(buf[:n]), ";")
	return ct, nil
}

// Check validates size and sniffed type of an upload and returns the type.
func Check(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}
	if fh.Size > MaxSize {
		return "", fmt.Errorf("%w: %s > %s", ErrFileTooLarge, FormatSize(fh.Size), FormatSize(MaxSize))
	}

	ct, err := DetectType(fh)
	if err != nil {
		return "", err
	}
	if !slices.Contains(Accepted, ct) {
		return ct, fmt.Errorf("%w: %s", ErrTypeNotAllowed, ct)
	}
	return ct, nil
}

// IsImage reports whether a content type can be previewed inline.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Preview returns a data URL of an image upload for an <img> preview.
func Preview(fh *multipart.FileHeader) (string, error) {
	ct, err := Check(fh)
	if err != nil {
		return "", err
	}
	if !IsImage(ct) {
		return "", ErrNotImage
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxSize))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToReadFile, err)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count in binary units with up to two
// decimals: 0 → "0 Bytes", 1536 → "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := min(int(math.Floor(math.Log(float64(bytes))/math.Log(1024))), len(sizeUnits)-1)
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// SanitizeFilename strips directories and NUL bytes from a client file name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}
