package calendar_test

import (
	"clinic/shared/calendar"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStorage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{name: "nowruz 1403", input: "1403/01/01", want: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{name: "unpadded parts", input: "1403/1/1", wantErr: calendar.ErrInvalidDate},
		{name: "signed year", input: "+1404/02/03", wantErr: calendar.ErrInvalidDate},
		{name: "surrounding space", input: " 1404/02/03", wantErr: calendar.ErrInvalidDate},
		{name: "five digit year", input: "01404/02/03", wantErr: calendar.ErrInvalidDate},
		{name: "last day of non leap year", input: "1402/12/29", want: time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)},
		{name: "esfand 30 on non leap year", input: "1402/12/30", wantErr: calendar.ErrInvalidDate},
		{name: "mehr has 30 days", input: "1403/07/31", wantErr: calendar.ErrInvalidDate},
		{name: "month out of range", input: "1403/13/01", wantErr: calendar.ErrInvalidDate},
		{name: "gregorian separator", input: "1403-01-01", wantErr: calendar.ErrInvalidDate},
		{name: "letters", input: "abcd/01/01", wantErr: calendar.ErrInvalidDate},
		{name: "empty", input: "", wantErr: calendar.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.ToStorage(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, input := range []string{"1403/01/01", "1403/06/31", "1403/12/30", "1404/07/15"} {
		t.Run(input, func(t *testing.T) {
			stored, err := calendar.ToStorage(input)
			require.NoError(t, err)

			assert.Equal(t, input, calendar.ToDisplay(stored))
		})
	}
}

func TestDisplayRoundTripEveryDay(t *testing.T) {
	valid := 0

	for year := 1399; year <= 1405; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 31; day++ {
				input := fmt.Sprintf("%04d/%02d/%02d", year, month, day)

				stored, err := calendar.ToStorage(input)
				if err != nil {
					continue
				}

				valid++

				assert.Equal(t, input, calendar.ToDisplay(stored))
			}
		}
	}

	// 1399 and 1403 are leap years.
	assert.Equal(t, 5*365+2*366, valid)
}

func TestToDisplay(t *testing.T) {
	assert.Empty(t, calendar.ToDisplay(time.Time{}))
	assert.Nil(t, calendar.ToDisplayPtr(nil))

	birthday := time.Date(1990, 3, 21, 0, 0, 0, 0, time.UTC)
	display := calendar.ToDisplayPtr(&birthday)

	require.NotNil(t, display)
	assert.Equal(t, "1369/01/01", *display)
}

func TestDayName(t *testing.T) {
	saturday := time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)
	sunday := saturday.AddDate(0, 0, 1)

	assert.Equal(t, "شنبه", calendar.DayName(saturday))
	assert.NotEqual(t, calendar.DayName(saturday), calendar.DayName(sunday))
}

func TestDayStart(t *testing.T) {
	stored, err := calendar.ToStorage("1403/01/01")
	require.NoError(t, err)

	start := calendar.DayStart(stored)

	assert.Equal(t, "1403/01/01 00:00:00", calendar.ToDisplayDateTime(start))
	assert.Equal(t, "1402/12/29 23:59:59", calendar.ToDisplayDateTime(start.Add(-time.Second)))
}

func TestDayEnd(t *testing.T) {
	stored, err := calendar.ToStorage("1403/01/01")
	require.NoError(t, err)

	end := calendar.DayEnd(stored)

	assert.Equal(t, "1403/01/01 23:59:59", calendar.ToDisplayDateTime(end))
	assert.Equal(t, 999999000, end.Nanosecond())
	assert.True(t, calendar.DayStart(stored).AddDate(0, 0, 1).Equal(end.Add(time.Microsecond)))
}

func TestToday(t *testing.T) {
	today := calendar.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Equal(t, calendar.ToDisplay(today), calendar.ToDisplayDateTime(calendar.DayStart(today))[:10])
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "short form", input: "09:30", want: "09:30:00"},
		{name: "full form", input: "17:10:00", want: "17:10:00"},
		{name: "surrounding space", input: " 11:00 ", want: "11:00:00"},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "no separator", input: "0930", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.NormalizeTime(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayTime(t *testing.T) {
	assert.Equal(t, "09:30", calendar.DisplayTime("09:30:00"))
	assert.Equal(t, "later", calendar.DisplayTime("later"))
}
