package inquiry

import "errors"

var ErrInvalidType = errors.New("unknown inquiry type")
