package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jvs-project/punch/internal/clock"
	"github.com/jvs-project/punch/pkg/model"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy   bool      `json:"healthy"`
	Intervals int       `json:"intervals"`
	Working   bool      `json:"working"`
	Findings  []Finding `json:"findings"`
	Repaired  []string  `json:"repaired,omitempty"`
}

// Doctor checks that the timesheet is well formed and that the working
// marker agrees with it.
type Doctor struct {
	clock *clock.Clock
}

// NewDoctor creates a new doctor.
func NewDoctor(c *clock.Clock) *Doctor {
	return &Doctor{clock: c}
}

// Check runs all diagnostic checks without modifying anything.
func (d *Doctor) Check() (*Result, error) {
	result := &Result{Healthy: true, Findings: []Finding{}}

	expected, ok := d.checkTimesheet(result)
	if ok {
		if err := d.checkMarker(result, expected); err != nil {
			return nil, err
		}
	}
	d.checkOrphanTmp(result)

	return result, nil
}

// Fix runs Check while holding the timesheet lock and repairs what can be
// repaired: the marker is rewritten from the timesheet and orphan temp files
// are removed. The timesheet itself is never modified.
func (d *Doctor) Fix() (*Result, error) {
	log := d.clock.Timesheet()
	if err := log.Lock(); err != nil {
		return nil, err
	}
	defer log.Unlock()

	result, err := d.Check()
	if err != nil {
		return nil, err
	}

	var remaining []Finding
	for _, f := range result.Findings {
		switch f.Category {
		case "state":
			if err := d.clock.State().SetWorking(result.Working); err != nil {
				return nil, err
			}
			result.Repaired = append(result.Repaired, f.Description)
		case "tmp":
			if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("remove %s: %w", f.Path, err)
			}
			result.Repaired = append(result.Repaired, f.Description)
		default:
			remaining = append(remaining, f)
		}
	}

	result.Findings = remaining
	if result.Findings == nil {
		result.Findings = []Finding{}
	}
	result.Healthy = true
	for _, f := range result.Findings {
		if f.Severity == "critical" || f.Severity == "error" {
			result.Healthy = false
		}
	}
	return result, nil
}

// checkTimesheet replays every interval. It returns whether the timesheet
// ends in an open interval and whether the replay succeeded.
func (d *Doctor) checkTimesheet(result *Result) (open bool, ok bool) {
	stream, closeLines, err := d.clock.Intervals()
	if err != nil {
		result.Findings = append(result.Findings, Finding{
			Category:    "timesheet",
			Description: fmt.Sprintf("cannot read timesheet: %v", err),
			Severity:    "critical",
			Path:        d.clock.Timesheet().Path(),
		})
		result.Healthy = false
		return false, false
	}
	defer closeLines()

	var last model.Interval
	for stream.Next() {
		last = stream.Interval()
		result.Intervals++
	}
	if err := stream.Err(); err != nil {
		result.Findings = append(result.Findings, Finding{
			Category:    "timesheet",
			Description: fmt.Sprintf("timesheet corrupt after %d intervals: %v", result.Intervals, err),
			Severity:    "critical",
			Path:        d.clock.Timesheet().Path(),
		})
		result.Healthy = false
		return false, false
	}

	result.Working = last.Open
	return last.Open, true
}

func (d *Doctor) checkMarker(result *Result, expected bool) error {
	working, err := d.clock.State().IsWorking()
	if err != nil {
		return err
	}
	if working == expected {
		return nil
	}

	desc := "state marker present but timesheet ends with an out record"
	if expected {
		desc = "state marker missing but timesheet ends with an unmatched in record"
	}
	result.Findings = append(result.Findings, Finding{
		Category:    "state",
		Description: desc,
		Severity:    "error",
		Path:        d.clock.State().Path(),
	})
	result.Healthy = false
	return nil
}

func (d *Doctor) checkOrphanTmp(result *Result) {
	entries, err := os.ReadDir(d.clock.Root())
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ".punch-tmp-") {
			continue
		}
		result.Findings = append(result.Findings, Finding{
			Category:    "tmp",
			Description: fmt.Sprintf("orphan temp file: %s", e.Name()),
			Severity:    "info",
			Path:        filepath.Join(d.clock.Root(), e.Name()),
		})
	}
}
