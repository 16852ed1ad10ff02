package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a repository lookup matches nothing.
var ErrNotFound = errors.New("not found")

// MalformedRecordError reports a row that could not be decoded. It is
// fatal to the triggering call and is surfaced verbatim: a data file
// with an undecodable row is corrupt, and silently dropping the row
// would be worse than failing.
type MalformedRecordError struct {
	Path string
	Row  int // 1-based, counting the header
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
