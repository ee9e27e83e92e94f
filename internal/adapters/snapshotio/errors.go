package snapshotio

import "errors"

// Sentinel kinds for snapshot I/O errors.
var (
	ErrOpenSnapshot  = errors.New("open snapshot failed")
	ErrReadSnapshot  = errors.New("read snapshot failed")
	ErrWriteSnapshot = errors.New("write snapshot failed")
)
