//go:build !linux && !darwin

package cli

// No built-in platform backend here; selfcheck probes will report
// ErrUnsupported.
const shellPath = "sh"

const (
	localSocketDomain = 1
	localSocketType   = 1
)
