package catalog

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrModelNotFound    = errors.New("model not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrInvalidInput     = errors.New("invalid input")
)
