// Package report rolls working intervals up into per-day totals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jvs-project/punch/pkg/model"
)

// DayLayout renders the day part of a report line.
const DayLayout = "Mon, 02 Jan 2006"

// Intervals is the pull interface Aggregate consumes.
type Intervals interface {
	Next() bool
	Interval() model.Interval
	Err() error
}

// Aggregate sums interval durations per UTC calendar day and calls emit once
// for each day with a non-zero total, in timesheet order. An interval counts
// entirely toward the day it started on, even if it runs past midnight.
//
// If intervals fails, the day in progress is discarded and the error is
// returned; days already emitted stay emitted.
func Aggregate(intervals Intervals, emit func(model.DailyTotal) error) error {
	var current model.Date
	var worked time.Duration

	for intervals.Next() {
		iv := intervals.Interval()
		day := model.DateOf(iv.Start)
		if day != current {
			if worked != 0 {
				if err := emit(model.DailyTotal{Date: current, Worked: worked}); err != nil {
					return err
				}
			}
			current = day
			worked = 0
		}
		worked += iv.Duration()
	}
	if err := intervals.Err(); err != nil {
		return err
	}

	if worked != 0 {
		return emit(model.DailyTotal{Date: current, Worked: worked})
	}
	return nil
}

// FormatLine renders a total as "Mon, 05 Jan 2015: 8:15".
func FormatLine(total model.DailyTotal) string {
	return fmt.Sprintf("%s: %d:%02d", total.Date.Time().Format(DayLayout), total.Hours(), total.Minutes())
}

// Entry is the JSON form of a daily total.
type Entry struct {
	Date    string `json:"date"`
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Seconds int64  `json:"seconds"`
}

// Writer emits totals to an io.Writer as text lines or JSON lines.
type Writer struct {
	w    io.Writer
	json bool
}

// NewWriter returns a Writer. With asJSON set, each total is written as one
// JSON object per line.
func NewWriter(w io.Writer, asJSON bool) *Writer {
	return &Writer{w: w, json: asJSON}
}

// Emit writes one total; it has the signature Aggregate expects.
func (rw *Writer) Emit(total model.DailyTotal) error {
	if !rw.json {
		_, err := fmt.Fprintln(rw.w, FormatLine(total))
		return err
	}
	data, err := json.Marshal(Entry{
		Date:    total.Date.Time().Format(time.DateOnly),
		Hours:   total.Hours(),
		Minutes: total.Minutes(),
		Seconds: int64(total.Worked / time.Second),
	})
	if err != nil {
		return fmt.Errorf("marshal report entry: %w", err)
	}
	_, err = rw.w.Write(append(data, '\n'))
	return err
}
