package media

import (
	"errors"
	"fmt"
)

var (
	ErrMissingContextField  = errors.New("missing upload context field")
	ErrUnknownFolderKind    = errors.New("unknown folder kind")
	ErrValidation           = errors.New("validation failed")
	ErrUnsupportedMediaType = errors.New("only image and video files are allowed")
	ErrPayloadTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrNotFound             = errors.New("file not found")
	ErrPathTraversal        = errors.New("path escapes media root")
)

// MissingContextFieldError names the context field a folder kind needs but did not get.
type MissingContextFieldError struct {
	Field string
}

func (e *MissingContextFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingContextFieldError) Is(target error) bool {
	return target == ErrMissingContextField
}

type UnknownFolderKindError struct {
	Value string
}

func (e *UnknownFolderKindError) Error() string {
	return fmt.Sprintf("unknown folder kind %q", e.Value)
}

func (e *UnknownFolderKindError) Is(target error) bool {
	return target == ErrUnknownFolderKind
}
