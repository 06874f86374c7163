package forge

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// OwnerFile returns the lock file Excel keeps next to an open workbook.
func OwnerFile(path string) string {
	return filepath.Join(filepath.Dir(path), "~$"+filepath.Base(path))
}

// Save writes f to path. The workbook is written to a temporary file in the
// target directory and renamed over path, so a failed save leaves any
// previous artifact untouched. A target held open by another program yields
// a *WorkbookLockedError; Save does not retry.
func Save(f *excelize.File, path string) error {
	if err := probeLock(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WorkbookWriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".forge-*.xlsx")
	if err != nil {
		return &WorkbookWriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return &WorkbookWriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &WorkbookWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return &WorkbookWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return classifyWriteError(path, err)
	}
	return nil
}

// probeLock fails when another program holds path open.
func probeLock(path string) error {
	if _, err := os.Stat(OwnerFile(path)); err == nil {
		return &WorkbookLockedError{Path: path}
	}
	fh, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if isSharingViolation(err) {
			return &WorkbookLockedError{Path: path, Err: err}
		}
		// Anything else is left for the write itself to report.
		return nil
	}
	return fh.Close()
}

func classifyWriteError(path string, err error) error {
	if isSharingViolation(err) {
		return &WorkbookLockedError{Path: path, Err: err}
	}
	return &WorkbookWriteError{Path: path, Err: err}
}
