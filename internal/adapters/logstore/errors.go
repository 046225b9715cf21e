package logstore

import "errors"

// Sentinel kinds for log store errors.
var (
	ErrEmpty = errors.New("log is empty")
)
