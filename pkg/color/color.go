// Package color provides terminal color output support for punch.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"fmt"
	"os"
	"sync/atomic"
)

var state struct {
	enabled    atomic.Bool
	overridden atomic.Bool
}

func init() {
	state.enabled.Store(detect())
}

// detect enables color unless NO_COLOR is set or TERM is dumb.
func detect() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Init applies the --no-color flag and the config's color setting on top of
// environment detection. configured is nil when the config leaves color on auto.
func Init(noColorFlag bool, configured *bool) {
	switch {
	case noColorFlag:
		Disable()
	case configured != nil && !state.overridden.Load():
		state.enabled.Store(*configured && detect())
	}
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	return state.enabled.Load()
}

// Disable turns off color output.
func Disable() {
	state.overridden.Store(true)
	state.enabled.Store(false)
}

// Enable turns on color output.
func Enable() {
	state.overridden.Store(true)
	state.enabled.Store(true)
}

// ANSI color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	DimCode = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func makeColorFunc(code string) func(string) string {
	return func(s string) string {
		if !Enabled() {
			return s
		}
		return code + s + Reset
	}
}

// Pre-defined color functions
var (
	Redf    = makeColorFunc(Red)
	Greenf  = makeColorFunc(Green)
	Yellowf = makeColorFunc(Yellow)
	Boldf   = makeColorFunc(Bold)
	Dimf    = makeColorFunc(DimCode)
)

// Error formats an error message in red.
func Error(s string) string {
	return Redf(s)
}

// Warningf formats a warning message with printf-style arguments.
func Warningf(format string, args ...any) string {
	return Yellowf(fmt.Sprintf(format, args...))
}

// PunchedIn formats the clocked-in status.
func PunchedIn(s string) string {
	return Greenf(s)
}

// PunchedOut formats the clocked-out status.
func PunchedOut(s string) string {
	return Yellowf(s)
}
