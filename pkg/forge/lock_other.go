//go:build !unix && !windows

package forge

func isSharingViolation(error) bool {
	return false
}
