package validator

import (
	"clinic/shared/failure"
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":         "{field} is required",
		"required_without": "{field} is required",
		"eqfield":          "{field} must match {param}",
		"nefield":          "{field} must differ from {param}",
		"gte":              "{field} must be greater than or equal to {param}",
		"lte":              "{field} must be less than or equal to {param}",
		"oneof":            "{field} must be one of {param}",
		"max":              "{field} must be less than or equal to {param}",
		"min":              "{field} must be greater than or equal to {param}",
		"email":            "{field} must be a valid email address",
		"uuid":             "{field} must be a valid id",
		"number":           "{field} must contain digits only",
		"len":              "{field} must be exactly {param} characters long",

		"jalali_date": "{field} must be a jalali date formatted YYYY/MM/DD",
		"slot_time":   "{field} must be a time formatted HH:MM",
		"mobile":      "{field} must be a mobile number like 09123456789",
	}
)

// unprocessableTags are well-formed values the calendar cannot place. They
// answer 422 like the date adapter does, not 400.
var unprocessableTags = map[string]bool{
	"jalali_date": true,
	"slot_time":   true,
}

// toFailure turns the first validation error into a Failure whose message
// names the field.
func toFailure(err error) error {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return failure.BadRequestFromString(err.Error())
	}

	for _, valErr := range valErrors {
		errStr := messages[valErr.Tag()]
		if errStr == "" {
			continue
		}

		errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
		errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

		if unprocessableTags[valErr.Tag()] {
			return failure.Unprocessable(errStr)
		}

		return failure.BadRequestFromString(errStr)
	}

	return failure.BadRequestFromString(valErrors.Error())
}
