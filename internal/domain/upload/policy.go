package upload

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"tigermarine/internal/domain/media"
)

const (
	MaxFileSize     = 50 * 1024 * 1024 // 50 MiB
	MaxFilesPerCall = 20
)

var allowedExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true,
}

var allowedTypePattern = regexp.MustCompile(`jpeg|jpg|png|gif|webp|mp4|mov|avi`)

// Container types whose names don't contain the extension token.
var allowedVideoTypes = map[string]bool{
	"video/quicktime": true,
	"video/x-msvideo": true,
	"video/msvideo":   true,
}

// FileInput is one incoming file as seen by the service.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func contentTypeAllowed(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	if allowedVideoTypes[ct] {
		return true
	}
	return allowedTypePattern.MatchString(ct)
}

func needsSniffing(ct string) bool {
	ct = strings.TrimSpace(ct)
	return ct == "" || strings.HasPrefix(ct, "application/octet-stream")
}

// detectContentType sniffs the first bytes of the file.
func detectContentType(f FileInput) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	mt, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	return mt.String(), nil
}

// check applies the size and type rules to f and returns the canonical
// on-disk filename and the effective content type.
func (s *Service) check(f FileInput) (string, string, error) {
	name, ok := media.Canonicalize(f.Filename)
	if !ok {
		return "", "", fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if f.Open == nil {
		return "", "", fmt.Errorf("%w: %s has no content", ErrValidation, name)
	}
	if f.Size > s.maxFileSize {
		return name, "", fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrPayloadTooLarge, name, f.Size, s.maxFileSize)
	}
	if !allowedExts[media.Ext(name)] {
		return name, "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, name)
	}

	ct := f.ContentType
	if needsSniffing(ct) {
		detected, err := detectContentType(f)
		if err != nil {
			return name, "", err
		}
		ct = detected
	}
	if !contentTypeAllowed(ct) {
		return name, ct, fmt.Errorf("%w: %s (%s)", ErrUnsupportedMediaType, name, ct)
	}
	return name, ct, nil
}
