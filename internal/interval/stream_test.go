package interval_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jvs-project/punch/internal/interval"
	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceLines struct {
	lines []string
	pos   int
	err   error
}

func (s *sliceLines) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	s.pos++
	return s.lines[s.pos-1], true
}

func (s *sliceLines) Err() error {
	if s.pos >= len(s.lines) {
		return s.err
	}
	return nil
}

var fixedNow = time.Date(2018, 1, 2, 12, 0, 0, 0, time.UTC)

func nowFn() time.Time { return fixedNow }

func collect(t *testing.T, lines ...string) ([]model.Interval, error) {
	t.Helper()
	s := interval.NewStream(&sliceLines{lines: lines}, nowFn)
	var out []model.Interval
	for s.Next() {
		out = append(out, s.Interval())
	}
	return out, s.Err()
}

func at(h, m int) time.Time {
	return time.Date(2018, 1, 1, h, m, 0, 0, time.UTC)
}

func TestStream_Empty(t *testing.T) {
	ivs, err := collect(t)
	require.NoError(t, err)
	assert.Empty(t, ivs)
}

func TestStream_ClosedInterval(t *testing.T) {
	ivs, err := collect(t,
		"in: Mon, 01 Jan 2018 09:00:00 UTC",
		"out: Mon, 01 Jan 2018 17:30:00 UTC",
	)
	require.NoError(t, err)
	require.Len(t, ivs, 1)
	assert.True(t, ivs[0].Start.Equal(at(9, 0)))
	assert.True(t, ivs[0].End.Equal(at(17, 30)))
	assert.False(t, ivs[0].Open)
}

func TestStream_TrailingInUsesNow(t *testing.T) {
	ivs, err := collect(t,
		"in: Mon, 01 Jan 2018 09:00:00 UTC",
		"out: Mon, 01 Jan 2018 10:00:00 UTC",
		"in: Mon, 01 Jan 2018 11:00:00 UTC",
	)
	require.NoError(t, err)
	require.Len(t, ivs, 2)
	assert.True(t, ivs[1].Open)
	assert.True(t, ivs[1].End.Equal(fixedNow))
}

func TestStream_IntervalCount(t *testing.T) {
	for n := 0; n <= 7; n++ {
		var lines []string
		for i := 0; i < n; i++ {
			kind := "in"
			if i%2 == 1 {
				kind = "out"
			}
			lines = append(lines, fmt.Sprintf("%s: Mon, 01 Jan 2018 %02d:00:00 UTC", kind, i))
		}
		ivs, err := collect(t, lines...)
		require.NoError(t, err)
		assert.Len(t, ivs, n/2+n%2, "records=%d", n)
	}
}

func TestStream_ConsecutiveIns(t *testing.T) {
	ivs, err := collect(t,
		"in: Mon, 01 Jan 2018 09:00:00 UTC",
		"in: Mon, 01 Jan 2018 10:00:00 UTC",
	)
	assert.Empty(t, ivs)
	assert.True(t, errors.Is(err, errclass.ErrTimesheetCorrupt))
}

func TestStream_StartsWithOut(t *testing.T) {
	_, err := collect(t, "out: Mon, 01 Jan 2018 09:00:00 UTC")
	assert.ErrorIs(t, err, errclass.ErrTimesheetCorrupt)
}

func TestStream_BadTimestamp(t *testing.T) {
	_, err := collect(t, "in: Mon, 01 Jan 2018 25:00:00 UTC")
	assert.ErrorIs(t, err, errclass.ErrTimesheetCorrupt)
}

func TestStream_StopsAtFirstError(t *testing.T) {
	lines := &sliceLines{lines: []string{
		"in: Mon, 01 Jan 2018 09:00:00 UTC",
		"out: Mon, 01 Jan 2018 10:00:00 UTC",
		"out: Mon, 01 Jan 2018 11:00:00 UTC",
		"in: Mon, 01 Jan 2018 12:00:00 UTC",
		"out: Mon, 01 Jan 2018 13:00:00 UTC",
	}}
	s := interval.NewStream(lines, nowFn)

	require.True(t, s.Next())
	assert.False(t, s.Next())
	assert.ErrorIs(t, s.Err(), errclass.ErrTimesheetCorrupt)

	// Exhausted streams stay exhausted.
	assert.False(t, s.Next())
	assert.Equal(t, model.Interval{}, s.Interval())
}

func TestStream_ReadError(t *testing.T) {
	readErr := errclass.ErrIO.WithMessage("disk gone")
	s := interval.NewStream(&sliceLines{
		lines: []string{"in: Mon, 01 Jan 2018 09:00:00 UTC"},
		err:   readErr,
	}, nowFn)

	assert.False(t, s.Next())
	assert.ErrorIs(t, s.Err(), errclass.ErrIO)
}

func TestStream_All(t *testing.T) {
	s := interval.NewStream(&sliceLines{lines: []string{
		"in: Mon, 01 Jan 2018 09:00:00 UTC",
		"out: Mon, 01 Jan 2018 10:00:00 UTC",
		"in: bogus",
	}}, nowFn)

	var got []model.Interval
	var gotErr error
	for iv, err := range s.All() {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, iv)
	}
	assert.Len(t, got, 1)
	assert.ErrorIs(t, gotErr, errclass.ErrTimesheetCorrupt)
}

func TestStream_DefaultNow(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Second)
	s := interval.NewStream(&sliceLines{lines: []string{model.Record{Kind: model.RecordIn, Time: before}.String()}}, nil)

	require.True(t, s.Next())
	assert.GreaterOrEqual(t, s.Interval().Duration(), time.Duration(0))
}
