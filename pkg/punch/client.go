package punch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jvs-project/punch/internal/clock"
	"github.com/jvs-project/punch/internal/doctor"
	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/logging"
	"github.com/jvs-project/punch/pkg/model"
)

// Error classes callers can match with errors.Is.
var (
	ErrAlreadyIn        = errclass.ErrAlreadyIn
	ErrAlreadyOut       = errclass.ErrAlreadyOut
	ErrTimesheetCorrupt = errclass.ErrTimesheetCorrupt
	ErrIO               = errclass.ErrIO
)

// Client provides time clock operations on one storage root.
type Client struct {
	clock *clock.Clock
}

// Options configures Open.
type Options struct {
	Now    func() time.Time // Wall clock; defaults to time.Now
	Logger *logging.Logger  // Diagnostics; discarded when nil
}

// EnvHome overrides the default storage root.
const EnvHome = "PUNCH_HOME"

// DefaultRoot returns $PUNCH_HOME, or ~/.punch when it is unset.
func DefaultRoot() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errclass.ErrIO.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".punch"), nil
}

// Open opens the storage root, creating it if needed.
func Open(root string, opts ...Options) (*Client, error) {
	quiet := logging.NewLogger(logging.LevelError)
	quiet.SetOutput(io.Discard)
	clockOpts := []clock.Option{clock.WithLogger(quiet)}
	for _, o := range opts {
		if o.Now != nil {
			clockOpts = append(clockOpts, clock.WithNow(o.Now))
		}
		if o.Logger != nil {
			clockOpts = append(clockOpts, clock.WithLogger(o.Logger))
		}
	}
	c, err := clock.Open(root, clockOpts...)
	if err != nil {
		return nil, fmt.Errorf("punch open: %w", err)
	}
	return &Client{clock: c}, nil
}

// Root returns the storage root.
func (c *Client) Root() string {
	return c.clock.Root()
}

// Close releases the timesheet.
func (c *Client) Close() error {
	return c.clock.Close()
}

// PunchIn records the start of a work session.
func (c *Client) PunchIn(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return c.clock.PunchIn()
}

// PunchOut records the end of the current work session.
func (c *Client) PunchOut(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return c.clock.PunchOut()
}

// Working reports whether the user is currently punched in.
func (c *Client) Working(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.clock.IsWorking()
}

// LastPunch returns the most recent record in the timesheet. ok is false
// when nothing has been punched yet.
func (c *Client) LastPunch(ctx context.Context) (rec model.Record, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return model.Record{}, false, err
	}
	return c.clock.Timesheet().Last()
}

// Report returns the per-day totals in timesheet order. On corruption it
// returns the days completed before the bad record along with the error.
func (c *Client) Report(ctx context.Context) ([]model.DailyTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var totals []model.DailyTotal
	err := c.clock.Report(func(t model.DailyTotal) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		totals = append(totals, t)
		return nil
	})
	return totals, err
}

// Check verifies the timesheet and the working marker; with fix set the
// marker is rewritten from the timesheet.
func (c *Client) Check(ctx context.Context, fix bool) (*doctor.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := doctor.NewDoctor(c.clock)
	if fix {
		return d.Fix()
	}
	return d.Check()
}
