// Package punch provides a library API for the punch time clock.
//
// It wraps the internal timesheet, state marker, interval and report
// packages so other programs (status bars, editor plugins) can punch and
// read totals without shelling out to the CLI.
//
// # Concurrency Safety
//
//   - PunchIn and PunchOut hold an exclusive advisory lock on the timesheet
//     for their duration, so two processes punching the same storage root
//     are serialized on platforms with flock(2).
//
//   - Report and Status take no lock. A report that races a punch sees the
//     timesheet either before or after the appended line.
//
//   - A Client is not meant to be shared between goroutines that punch
//     concurrently; open one Client per goroutine instead.
//
// # Usage
//
//	root, err := punch.DefaultRoot()
//	if err != nil { ... }
//	client, err := punch.Open(root)
//	if err != nil { ... }
//	defer client.Close()
//
//	if _, err := client.PunchIn(ctx); errors.Is(err, punch.ErrAlreadyIn) { ... }
//	totals, err := client.Report(ctx)
package punch
