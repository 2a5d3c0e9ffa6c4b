package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"studyshare/backend/common"

	"github.com/google/uuid"
)

// Extensions accepted for upload. Everything else is rejected before any
// file or row is written.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
	".zip":  true,
}

var ErrFileTypeNotAllowed = errors.New("file type not allowed")

// IsAllowedFile checks the extension of a user-supplied filename.
func IsAllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AllowedExtensionList returns the accepted extensions for error messages.
func AllowedExtensionList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	return strings.Join(exts, ", ")
}

// sanitizeFilename keeps a recognizable tail of the original name while
// stripping anything path-like.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SaveUploadedFile writes the multipart file into the upload directory under
// a generated name and returns that stored reference plus the byte size.
// The generated name never collides with or reveals the user-supplied one.
func SaveUploadedFile(file *multipart.FileHeader) (string, int64, error) {
	if !IsAllowedFile(file.Filename) {
		return "", 0, ErrFileTypeNotAllowed
	}
	if err := os.MkdirAll(common.UploadPath, 0o755); err != nil {
		return "", 0, fmt.Errorf("create upload directory: %w", err)
	}

	storedName := strings.ReplaceAll(uuid.New().String(), "-", "") + "_" + sanitizeFilename(file.Filename)
	dstPath := filepath.Join(common.UploadPath, storedName)

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(dstPath)
		return "", 0, fmt.Errorf("write stored file: %w", err)
	}
	return storedName, written, nil
}

// ResolveStoredPath maps a stored reference to its on-disk path, refusing
// anything that escapes the upload directory.
func ResolveStoredPath(storedName string) (string, error) {
	fullPath := filepath.Join(common.UploadPath, storedName)
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(common.UploadPath)) {
		return "", errors.New("invalid file path")
	}
	return fullPath, nil
}

// DeleteStoredFile removes a stored file; a missing file is not an error.
func DeleteStoredFile(storedName string) error {
	fullPath, err := ResolveStoredPath(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
