package conflicts

import "errors"

// ErrInternal is returned when the store could not be read
var ErrInternal = errors.New("conflicts: internal error")
