package repository

import "errors"

// ErrNotFound marks lookups and guarded writes that matched no row. Callers
// check it with errors.Is to tell a missing entity from a database failure.
var ErrNotFound = errors.New("not found")
