package validator

import (
	"clinic/shared/calendar"
	"clinic/shared/failure"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var mobilePattern = regexp.MustCompile(`^09\d{9}$`)

func registerJalaliDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := calendar.ToStorage(value)

	return err == nil
}

func registerSlotTimeValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := calendar.NormalizeTime(value)

	return err == nil
}

func registerMobileValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)

	return ok && mobilePattern.MatchString(value)
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("jalali_date", registerJalaliDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("slot_time", registerSlotTimeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("mobile", registerMobileValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateOptional is Validate for bodies that may be absent. An empty body,
// whatever its transfer encoding, validates data as it is.
func ValidateOptional[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return toFailure(err)
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return toFailure(err)
	}

	return nil
}
