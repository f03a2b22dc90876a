package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jvs-project/punch/internal/clock"
	"github.com/jvs-project/punch/pkg/color"
	"github.com/jvs-project/punch/pkg/logging"
	"github.com/jvs-project/punch/pkg/punch"
)

// nowFunc is the wall clock handed to the time clock.
var nowFunc = time.Now

// storageRoot resolves the storage directory: --dir, then $PUNCH_HOME,
// then ~/.punch.
func storageRoot() (string, error) {
	if storageDir != "" {
		return storageDir, nil
	}
	return punch.DefaultRoot()
}

// openClock opens the time clock in the resolved storage root. The caller
// must Close it.
func openClock() (*clock.Clock, error) {
	root, err := storageRoot()
	if err != nil {
		return nil, err
	}
	return clock.Open(root, clock.WithNow(nowFunc), clock.WithLogger(logging.Global()))
}

func fmtErr(w io.Writer, format string, args ...any) {
	prefix := "punch: "
	if color.Enabled() {
		prefix = color.Error("punch:") + " "
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
