//go:build linux || darwin

package cli

import "golang.org/x/sys/unix"

const shellPath = "/bin/sh"

const (
	localSocketDomain = unix.AF_UNIX
	localSocketType   = unix.SOCK_STREAM
)
