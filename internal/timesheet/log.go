// Package timesheet implements the append-only punch log.
package timesheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/model"
)

// FileName is the timesheet's name inside the storage root.
const FileName = "timesheet"

// Log appends punch records to the timesheet file and reads them back.
type Log struct {
	path   string
	mu     sync.Mutex
	file   *os.File
	locked bool
}

// Open opens the timesheet inside root for appending, creating root and the
// file when they do not exist.
func Open(root string) (*Log, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errclass.ErrIO.Wrap(err, "create storage dir")
	}

	path := filepath.Join(root, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errclass.ErrIO.Wrap(err, "open timesheet")
	}

	return &Log{path: path, file: file}, nil
}

// Path returns the timesheet path.
func (l *Log) Path() string {
	return l.path
}

// Lock takes an exclusive advisory lock on the timesheet. It blocks until
// any other process holding the lock releases it.
func (l *Log) Lock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locked {
		return nil
	}
	if err := lockFile(l.file); err != nil {
		return errclass.ErrIO.Wrap(err, "flock timesheet")
	}
	l.locked = true
	return nil
}

// Unlock releases the lock taken by Lock.
func (l *Log) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.locked {
		return nil
	}
	l.locked = false
	if err := unlockFile(l.file); err != nil {
		return errclass.ErrIO.Wrap(err, "unlock timesheet")
	}
	return nil
}

// Append writes one record as the new last line of the timesheet.
func (l *Log) Append(kind model.RecordKind, ts time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := model.Record{Kind: kind, Time: ts}.String() + "\n"

	// Another process may have grown the file since we opened it.
	if _, err := l.file.Seek(0, io.SeekEnd); err != nil {
		return errclass.ErrIO.Wrap(err, "seek to end")
	}
	if _, err := l.file.WriteString(line); err != nil {
		return errclass.ErrIO.Wrap(err, "write %s record", kind)
	}
	if err := l.file.Sync(); err != nil {
		return errclass.ErrIO.Wrap(err, "sync timesheet")
	}
	return nil
}

// Lines opens an independent reader positioned at the start of the timesheet.
// The caller must Close it.
func (l *Log) Lines() (*LineReader, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, errclass.ErrIO.Wrap(err, "open timesheet for reading")
	}
	return &LineReader{file: f, scanner: bufio.NewScanner(f)}, nil
}

// Last returns the final record in the timesheet. ok is false when the
// timesheet is empty.
func (l *Log) Last() (rec model.Record, ok bool, err error) {
	lines, err := l.Lines()
	if err != nil {
		return model.Record{}, false, err
	}
	defer lines.Close()

	var last string
	for {
		line, more := lines.Next()
		if !more {
			break
		}
		last = line
		ok = true
	}
	if err := lines.Err(); err != nil {
		return model.Record{}, false, err
	}
	if !ok {
		return model.Record{}, false, nil
	}

	rec, err = model.ParseRecord(last)
	if err != nil {
		return model.Record{}, false, err
	}
	return rec, true, nil
}

// Close releases the lock, if held, and closes the append handle.
func (l *Log) Close() error {
	if err := l.Unlock(); err != nil {
		l.file.Close()
		return err
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close timesheet: %w", err)
	}
	return nil
}

// LineReader streams raw timesheet lines from the beginning of the file.
type LineReader struct {
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

// Next returns the next line without its terminator. It returns false at end
// of file or on a read error; check Err afterwards.
func (r *LineReader) Next() (string, bool) {
	if r.err != nil {
		return "", false
	}
	if r.scanner.Scan() {
		return r.scanner.Text(), true
	}
	switch err := r.scanner.Err(); {
	case errors.Is(err, bufio.ErrTooLong):
		r.err = errclass.ErrTimesheetCorrupt.Wrap(err, "read timesheet")
	case err != nil:
		r.err = errclass.ErrIO.Wrap(err, "read timesheet")
	}
	return "", false
}

// Err returns the first read error, if any.
func (r *LineReader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *LineReader) Close() error {
	return r.file.Close()
}
