// Package state persists the "currently working" flag as a marker file.
//
// Only the marker's existence matters; its content is ignored. The timesheet
// is the source of truth and the marker is a fast-path cache of whether its
// last record is an unmatched in.
package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/fsutil"
)

// FileName is the marker's name inside the storage root.
const FileName = "state"

// Store reads and writes the working marker.
type Store struct {
	path string
}

// New creates a Store for the marker at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a Store for the marker inside the storage root.
func Open(root string) *Store {
	return New(filepath.Join(root, FileName))
}

// Path returns the marker path.
func (s *Store) Path() string {
	return s.path
}

// IsWorking reports whether the marker exists.
func (s *Store) IsWorking() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errclass.ErrIO.Wrap(err, "stat state marker")
}

// SetWorking creates the marker (truncating any content) when working is
// true and removes it otherwise.
func (s *Store) SetWorking(working bool) error {
	if working {
		if err := fsutil.AtomicWrite(s.path, nil, 0644); err != nil {
			return errclass.ErrIO.Wrap(err, "create state marker")
		}
		return nil
	}
	if err := fsutil.RemoveAndSync(s.path); err != nil {
		return errclass.ErrIO.Wrap(err, "remove state marker")
	}
	return nil
}
