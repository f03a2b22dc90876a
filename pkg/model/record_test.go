package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_String(t *testing.T) {
	rec := model.Record{Kind: model.RecordIn, Time: time.Date(2018, 1, 1, 9, 0, 0, 0, time.UTC)}
	assert.Equal(t, "in: Mon, 01 Jan 2018 09:00:00 UTC", rec.String())
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2018, 1, 1, 10, 0, 0, 0, loc)
	assert.Equal(t, "Mon, 01 Jan 2018 09:00:00 UTC", model.FormatTimestamp(ts))
}

func TestParseRecord(t *testing.T) {
	rec, err := model.ParseRecord("out: Mon, 01 Jan 2018 17:30:00 UTC")
	require.NoError(t, err)
	assert.Equal(t, model.RecordOut, rec.Kind)
	assert.True(t, rec.Time.Equal(time.Date(2018, 1, 1, 17, 30, 0, 0, time.UTC)))
}

func TestParseRecord_RoundTripSecondsPrecision(t *testing.T) {
	ts := time.Date(2015, 1, 5, 8, 15, 42, 987654321, time.UTC)
	rec, err := model.ParseRecord(model.Record{Kind: model.RecordIn, Time: ts}.String())
	require.NoError(t, err)
	assert.True(t, rec.Time.Equal(ts.Truncate(time.Second)))
}

func TestParseRecord_Corrupt(t *testing.T) {
	cases := []string{
		"",
		"in:",
		"in Mon, 01 Jan 2018 09:00:00 UTC",
		"IN: Mon, 01 Jan 2018 09:00:00 UTC",
		"in: yesterday",
		"lunch: Mon, 01 Jan 2018 12:00:00 UTC",
		"in: Mon, 01 Jan 2018 09:00:00 UTC\r",
		"in: Mon, 01 Jan 2018 09:00:00 UTC ",
		"in:  Mon, 01 Jan 2018 09:00:00 UTC",
	}
	for _, line := range cases {
		_, err := model.ParseRecord(line)
		assert.True(t, errors.Is(err, errclass.ErrTimesheetCorrupt), "line %q", line)
	}
}

func TestParseRecordOf_WrongKind(t *testing.T) {
	_, err := model.ParseRecordOf("in: Mon, 01 Jan 2018 09:00:00 UTC", model.RecordOut)
	assert.ErrorIs(t, err, errclass.ErrTimesheetCorrupt)
}

func TestDateOf(t *testing.T) {
	d := model.DateOf(time.Date(2018, 1, 1, 23, 50, 0, 0, time.UTC))
	assert.Equal(t, model.Date{Year: 2018, Month: time.January, Day: 1}, d)
	assert.False(t, d.IsZero())
	assert.True(t, model.Date{}.IsZero())
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), d.Time())
}

func TestDailyTotal_HoursMinutes(t *testing.T) {
	total := model.DailyTotal{Worked: 8*time.Hour + 15*time.Minute + 59*time.Second}
	assert.Equal(t, 8, total.Hours())
	assert.Equal(t, 15, total.Minutes())
}

func TestInterval_Duration(t *testing.T) {
	start := time.Date(2018, 1, 1, 23, 50, 0, 0, time.UTC)
	iv := model.Interval{Start: start, End: start.Add(20 * time.Minute)}
	assert.Equal(t, 20*time.Minute, iv.Duration())
}
