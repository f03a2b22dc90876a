// Package interval reconstructs working intervals from raw timesheet lines.
package interval

import (
	"iter"
	"time"

	"github.com/jvs-project/punch/pkg/model"
)

// LineSource yields raw timesheet lines in file order.
type LineSource interface {
	Next() (string, bool)
	Err() error
}

// Stream pairs in/out lines into intervals lazily. It is single-pass: once
// Next returns false the stream is exhausted and cannot be restarted.
type Stream struct {
	lines LineSource
	now   func() time.Time
	cur   model.Interval
	err   error
	done  bool
}

// NewStream returns a Stream over lines. now supplies the end of a trailing
// interval whose out record has not been written yet.
func NewStream(lines LineSource, now func() time.Time) *Stream {
	if now == nil {
		now = time.Now
	}
	return &Stream{lines: lines, now: now}
}

// Next advances to the next interval. It returns false at the end of the
// timesheet or at the first error; Err distinguishes the two.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}

	startLine, ok := s.lines.Next()
	if !ok {
		return s.finish(s.lines.Err())
	}
	start, err := model.ParseRecordOf(startLine, model.RecordIn)
	if err != nil {
		return s.finish(err)
	}

	endLine, ok := s.lines.Next()
	if !ok {
		if err := s.lines.Err(); err != nil {
			return s.finish(err)
		}
		s.cur = model.Interval{Start: start.Time, End: s.now().UTC(), Open: true}
		return true
	}
	end, err := model.ParseRecordOf(endLine, model.RecordOut)
	if err != nil {
		return s.finish(err)
	}

	s.cur = model.Interval{Start: start.Time, End: end.Time}
	return true
}

func (s *Stream) finish(err error) bool {
	s.done = true
	s.err = err
	s.cur = model.Interval{}
	return false
}

// Interval returns the interval produced by the last successful Next.
func (s *Stream) Interval() model.Interval {
	return s.cur
}

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error {
	return s.err
}

// All adapts the stream to a range-over-func sequence. A non-nil error is
// yielded once, as the final element.
func (s *Stream) All() iter.Seq2[model.Interval, error] {
	return func(yield func(model.Interval, error) bool) {
		for s.Next() {
			if !yield(s.cur, nil) {
				return
			}
		}
		if s.err != nil {
			yield(model.Interval{}, s.err)
		}
	}
}
