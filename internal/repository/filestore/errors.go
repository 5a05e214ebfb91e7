package filestore

import (
	"errors"
	"io/fs"
)

// isNotExist checks if err reports a missing file or directory
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
