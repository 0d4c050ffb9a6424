//go:build linux

package cli

import "golang.org/x/sys/unix"

// Linux names the termios ioctls after the System V calls.
const (
	getTermiosRequest = unix.TCGETS
	setTermiosRequest = unix.TCSETS
)
