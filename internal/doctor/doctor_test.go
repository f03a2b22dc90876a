package doctor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jvs-project/punch/internal/clock"
	"github.com/jvs-project/punch/internal/doctor"
	"github.com/jvs-project/punch/internal/state"
	"github.com/jvs-project/punch/internal/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClock(t *testing.T, root, content string) *clock.Clock {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0755))
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, timesheet.FileName), []byte(content), 0644))
	}
	c, err := clock.Open(root, clock.WithNow(func() time.Time {
		return time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDoctor_Check_HealthyEmpty(t *testing.T) {
	c := setupClock(t, t.TempDir(), "")

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Empty(t, result.Findings)
	assert.Zero(t, result.Intervals)
	assert.False(t, result.Working)
}

func TestDoctor_Check_HealthyWorking(t *testing.T) {
	root := t.TempDir()
	c := setupClock(t, root, "in: Mon, 01 Jan 2018 09:00:00 UTC\n")
	require.NoError(t, c.State().SetWorking(true))

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.True(t, result.Working)
	assert.Equal(t, 1, result.Intervals)
}

func TestDoctor_Check_Corrupt(t *testing.T) {
	c := setupClock(t, t.TempDir(), "in: Mon, 01 Jan 2018 09:00:00 UTC\nin: Mon, 01 Jan 2018 10:00:00 UTC\n")

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "timesheet", result.Findings[0].Category)
	assert.Equal(t, "critical", result.Findings[0].Severity)
}

func TestDoctor_Check_MarkerMissing(t *testing.T) {
	c := setupClock(t, t.TempDir(), "in: Mon, 01 Jan 2018 09:00:00 UTC\n")

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "state", result.Findings[0].Category)
	assert.Contains(t, result.Findings[0].Description, "missing")
}

func TestDoctor_Check_MarkerStale(t *testing.T) {
	root := t.TempDir()
	c := setupClock(t, root, "in: Mon, 01 Jan 2018 09:00:00 UTC\nout: Mon, 01 Jan 2018 10:00:00 UTC\n")
	require.NoError(t, c.State().SetWorking(true))

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Description, "present")

	// Check never repairs.
	assert.FileExists(t, filepath.Join(root, state.FileName))
}

func TestDoctor_Fix_RewritesMarker(t *testing.T) {
	root := t.TempDir()
	c := setupClock(t, root, "in: Mon, 01 Jan 2018 09:00:00 UTC\n")
	before, err := os.ReadFile(filepath.Join(root, timesheet.FileName))
	require.NoError(t, err)

	result, err := doctor.NewDoctor(c).Fix()
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Len(t, result.Repaired, 1)

	working, err := c.IsWorking()
	require.NoError(t, err)
	assert.True(t, working)

	after, err := os.ReadFile(filepath.Join(root, timesheet.FileName))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDoctor_Fix_LeavesCorruption(t *testing.T) {
	c := setupClock(t, t.TempDir(), "out: Mon, 01 Jan 2018 09:00:00 UTC\n")

	result, err := doctor.NewDoctor(c).Fix()
	require.NoError(t, err)
	assert.False(t, result.Healthy)
	assert.Empty(t, result.Repaired)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "timesheet", result.Findings[0].Category)
}

func TestDoctor_OrphanTmp(t *testing.T) {
	root := t.TempDir()
	c := setupClock(t, root, "")
	tmp := filepath.Join(root, ".punch-tmp-12345")
	require.NoError(t, os.WriteFile(tmp, nil, 0644))

	result, err := doctor.NewDoctor(c).Check()
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "info", result.Findings[0].Severity)

	result, err = doctor.NewDoctor(c).Fix()
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.NoFileExists(t, tmp)
}
