package system

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when the context's allocator refuses a
	// request.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrOverflow is returned by Calloc when count*elemSize wraps around.
	// It is detected before the allocator is invoked.
	ErrOverflow = errors.New("allocation size overflow")

	// ErrChannelClosed reports a clean end-of-stream on Recvmsg: the peer
	// closed the channel. It is distinct from an I/O failure, analogous to
	// io.EOF.
	ErrChannelClosed = errors.New("channel closed")

	// ErrStillRunning is returned by a ReapPoll wait when the child has
	// not terminated yet.
	ErrStillRunning = errors.New("child still running")

	// ErrUnsupported is returned when neither a hook nor a default
	// implementation exists for an operation on this platform.
	ErrUnsupported = errors.New("operation not supported on this platform")
)

// SysError wraps the OS error behind a failed descriptor or socket
// operation.
type SysError struct {
	Op  string
	Err error
}

func (e *SysError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SysError) Unwrap() error {
	return e.Err
}

// SpawnError wraps a process-creation failure. No partial child is left
// running when it is returned.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

func sysErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SysError{Op: op, Err: err}
}
