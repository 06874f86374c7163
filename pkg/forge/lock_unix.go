//go:build unix

package forge

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isSharingViolation reports whether err means another process has the file open.
func isSharingViolation(err error) bool {
	return errors.Is(err, unix.EBUSY) || errors.Is(err, unix.ETXTBSY)
}
