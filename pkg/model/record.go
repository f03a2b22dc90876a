package model

import (
	"strings"
	"time"

	"github.com/jvs-project/punch/pkg/errclass"
)

// RecordKind identifies a punch event in the timesheet.
type RecordKind string

const (
	RecordIn  RecordKind = "in"
	RecordOut RecordKind = "out"
)

// TimestampLayout is the calendar form every record timestamp is written in.
// Times are always rendered in UTC, e.g. "Mon, 01 Jan 2018 09:00:00 UTC".
const TimestampLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// Record is a single line in the timesheet.
type Record struct {
	Kind RecordKind
	Time time.Time
}

// String renders the record as it is stored, without the trailing newline.
func (r Record) String() string {
	return string(r.Kind) + ": " + FormatTimestamp(r.Time)
}

// FormatTimestamp renders t in TimestampLayout, truncated to whole seconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a timestamp written by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, errclass.ErrTimesheetCorrupt.WithMessagef("bad timestamp %q", s)
	}
	return t.UTC(), nil
}

// ParseRecord parses one timesheet line into a Record.
func ParseRecord(line string) (Record, error) {
	for _, kind := range []RecordKind{RecordIn, RecordOut} {
		prefix := string(kind) + ": "
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			ts, err := ParseTimestamp(rest)
			if err != nil {
				return Record{}, err
			}
			return Record{Kind: kind, Time: ts}, nil
		}
	}
	return Record{}, errclass.ErrTimesheetCorrupt.WithMessagef("unrecognized record %q", line)
}

// ParseRecordOf parses line and requires it to be of the given kind.
func ParseRecordOf(line string, kind RecordKind) (Record, error) {
	rec, err := ParseRecord(line)
	if err != nil {
		return Record{}, err
	}
	if rec.Kind != kind {
		return Record{}, errclass.ErrTimesheetCorrupt.WithMessagef("expected %q record, got %q", kind, line)
	}
	return rec, nil
}
