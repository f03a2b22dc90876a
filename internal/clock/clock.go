// Package clock implements the punch commands on top of the timesheet and
// the working marker.
package clock

import (
	"time"

	"github.com/jvs-project/punch/internal/interval"
	"github.com/jvs-project/punch/internal/report"
	"github.com/jvs-project/punch/internal/state"
	"github.com/jvs-project/punch/internal/timesheet"
	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/logging"
	"github.com/jvs-project/punch/pkg/model"
)

// Clock is a time clock bound to one storage root.
type Clock struct {
	root   string
	log    *timesheet.Log
	state  *state.Store
	now    func() time.Time
	logger *logging.Logger
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow overrides the wall clock used for punches and open intervals.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Clock) { c.logger = l }
}

// Open prepares the storage root and opens the timesheet for appending.
func Open(root string, opts ...Option) (*Clock, error) {
	c := &Clock{
		root:   root,
		state:  state.Open(root),
		now:    time.Now,
		logger: logging.Global(),
	}
	for _, opt := range opts {
		opt(c)
	}

	log, err := timesheet.Open(root)
	if err != nil {
		return nil, err
	}
	c.log = log
	c.logger = c.logger.WithFields(map[string]any{"root": root})
	return c, nil
}

// Root returns the storage root.
func (c *Clock) Root() string { return c.root }

// Timesheet returns the underlying log.
func (c *Clock) Timesheet() *timesheet.Log { return c.log }

// State returns the working marker store.
func (c *Clock) State() *state.Store { return c.state }

// Close releases the timesheet.
func (c *Clock) Close() error {
	return c.log.Close()
}

// IsWorking reports the cached working state. It never touches the timesheet.
func (c *Clock) IsWorking() (bool, error) {
	return c.state.IsWorking()
}

// PunchIn records the start of a work session and returns its timestamp.
func (c *Clock) PunchIn() (time.Time, error) {
	return c.punch(model.RecordIn)
}

// PunchOut records the end of the current work session and returns its timestamp.
func (c *Clock) PunchOut() (time.Time, error) {
	return c.punch(model.RecordOut)
}

func (c *Clock) punch(kind model.RecordKind) (time.Time, error) {
	if err := c.log.Lock(); err != nil {
		return time.Time{}, err
	}
	defer c.log.Unlock()

	working, err := c.state.IsWorking()
	if err != nil {
		return time.Time{}, err
	}
	if kind == model.RecordIn && working {
		return time.Time{}, errclass.ErrAlreadyIn.WithMessage("already punched in")
	}
	if kind == model.RecordOut && !working {
		return time.Time{}, errclass.ErrAlreadyOut.WithMessage("already punched out")
	}

	at := c.now().UTC().Truncate(time.Second)
	if err := c.log.Append(kind, at); err != nil {
		c.logger.ErrorErr("append record", err, map[string]any{"kind": string(kind)})
		return time.Time{}, err
	}
	if err := c.state.SetWorking(kind == model.RecordIn); err != nil {
		c.logger.ErrorErr("update state marker", err, map[string]any{"kind": string(kind)})
		return time.Time{}, err
	}

	c.logger.Debug("punched", map[string]any{"kind": string(kind), "at": model.FormatTimestamp(at)})
	return at, nil
}

// Intervals opens a fresh interval stream over the whole timesheet. The
// returned close function releases the read handle.
func (c *Clock) Intervals() (*interval.Stream, func() error, error) {
	lines, err := c.log.Lines()
	if err != nil {
		return nil, nil, err
	}
	return interval.NewStream(lines, c.now), lines.Close, nil
}

// Report replays the timesheet and calls emit once per worked day.
func (c *Clock) Report(emit func(model.DailyTotal) error) error {
	stream, closeLines, err := c.Intervals()
	if err != nil {
		return err
	}
	defer closeLines()

	days := 0
	err = report.Aggregate(stream, func(total model.DailyTotal) error {
		days++
		return emit(total)
	})
	if err != nil {
		c.logger.Debug("report stopped", map[string]any{"error": err.Error(), "days_emitted": days})
		return err
	}
	c.logger.Debug("report complete", map[string]any{"days": days})
	return nil
}
