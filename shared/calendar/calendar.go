// Package calendar converts between the Jalali dates operators type and the
// Gregorian dates stored in the database.
package calendar

import (
	"clinic/shared/constant"
	"clinic/shared/failure"
	"clinic/shared/timezone"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	ptime "github.com/yaa110/go-persian-calendar"
)

const (
	displayDateLayout     = "yyyy/MM/dd"
	displayDateTimeLayout = "yyyy/MM/dd HH:mm:ss"
	dateSeparator         = "/"
	timeSeparator         = ":"
)

var datePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)

var (
	ErrInvalidDate = failure.Unprocessable("invalid jalali date, expected YYYY/MM/DD")
	ErrInvalidTime = failure.Unprocessable("invalid time, expected HH:MM")
)

// ToStorage parses a Jalali "YYYY/MM/DD" string into the Gregorian calendar
// day it names, at midnight UTC. Only the zero-padded form is accepted.
func ToStorage(value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, ErrInvalidDate
	}

	parts := strings.Split(value, dateSeparator)

	year, errYear := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	day, errDay := strconv.Atoi(parts[2])

	if errYear != nil || errMonth != nil || errDay != nil {
		return time.Time{}, ErrInvalidDate
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, ErrInvalidDate
	}

	loc := timezone.GetLocation()

	// Noon keeps DST shifts from moving the Gregorian day.
	gregorian := ptime.Date(year, ptime.Month(month), day, 12, 0, 0, 0, loc).Time()

	back := ptime.New(gregorian)
	if back.Year() != year || int(back.Month()) != month || back.Day() != day {
		return time.Time{}, ErrInvalidDate
	}

	return stored(gregorian), nil
}

// ToDisplay renders a stored Gregorian date as "YYYY/MM/DD" in the Jalali calendar.
func ToDisplay(date time.Time) string {
	if date.IsZero() {
		return ""
	}

	return jalali(date).Format(displayDateLayout)
}

// ToDisplayPtr is ToDisplay for nullable columns.
func ToDisplayPtr(date *time.Time) *string {
	if date == nil || date.IsZero() {
		return nil
	}

	display := ToDisplay(*date)

	return &display
}

// ToDisplayDateTime renders an instant in the application timezone as "YYYY/MM/DD HH:MM:SS".
func ToDisplayDateTime(instant time.Time) string {
	if instant.IsZero() {
		return ""
	}

	return ptime.New(timezone.ToAppTime(instant)).Format(displayDateTimeLayout)
}

// DayName returns the Persian weekday name of a stored date.
func DayName(date time.Time) string {
	return jalali(date).Weekday().String()
}

// Today returns the current calendar day in the application timezone, as stored.
func Today() time.Time {
	return stored(now.With(timezone.Now()).BeginningOfDay())
}

// DayStart returns the first instant of a stored day in the application timezone.
func DayStart(date time.Time) time.Time {
	return appDay(date).BeginningOfDay()
}

// DayEnd returns the last instant of a stored day in the application timezone,
// truncated to the microseconds postgres keeps.
func DayEnd(date time.Time) time.Time {
	return appDay(date).EndOfDay().Truncate(time.Microsecond)
}

// appDay places a stored day in the application timezone. Noon keeps a DST
// shift at midnight from moving it to the neighbouring day.
func appDay(date time.Time) *now.Now {
	return now.With(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, timezone.GetLocation()))
}

func stored(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeTime accepts "HH:MM" or "HH:MM:SS" and returns the stored "HH:MM:SS" form.
func NormalizeTime(value string) (string, error) {
	value = strings.TrimSpace(value)

	if strings.Count(value, timeSeparator) == 1 {
		value += timeSeparator + "00"
	}

	parsed, err := time.Parse(constant.StorageTimeFormat, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTime, value)
	}

	return parsed.Format(constant.StorageTimeFormat), nil
}

// DisplayTime turns a stored "HH:MM:SS" into "HH:MM". Unknown input is returned as is.
func DisplayTime(value string) string {
	parsed, err := time.Parse(constant.StorageTimeFormat, value)
	if err != nil {
		return value
	}

	return parsed.Format(constant.DisplayTimeFormat)
}

func jalali(date time.Time) ptime.Time {
	return ptime.New(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, timezone.GetLocation()))
}
