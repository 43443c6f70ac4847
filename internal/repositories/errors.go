package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup matches nothing.
// Callers distinguish "no such record" from transport failures with
// errors.Is.
var ErrNotFound = errors.New("record not found")
