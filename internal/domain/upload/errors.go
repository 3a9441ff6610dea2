package upload

import (
	"errors"
	"fmt"

	"tigermarine/internal/domain/media"
)

// Re-exported so handlers and callers only need this package.
var (
	ErrValidation           = media.ErrValidation
	ErrUnsupportedMediaType = media.ErrUnsupportedMediaType
	ErrPayloadTooLarge      = media.ErrPayloadTooLarge
	ErrNotFound             = media.ErrNotFound
	ErrPathTraversal        = media.ErrPathTraversal
	ErrNoFiles              = fmt.Errorf("%w: no file uploaded", media.ErrValidation)
	ErrTooManyFiles         = fmt.Errorf("%w: too many files", media.ErrValidation)

	errLimitExceeded = errors.New("read limit exceeded")
)

// BatchError reports a rejected multi-file upload. Results carries the
// outcome of every file; nothing from the batch was kept on disk.
type BatchError struct {
	Results []FileResult
	first   error
}

func (e *BatchError) Error() string {
	failed := 0
	for _, r := range e.Results {
		if r.Err != nil {
			failed++
		}
	}
	return fmt.Sprintf("%d of %d files rejected: %v", failed, len(e.Results), e.first)
}

func (e *BatchError) Unwrap() error { return e.first }
