//go:build windows

package forge

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isSharingViolation reports whether err means another process has the file open.
func isSharingViolation(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) || errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
