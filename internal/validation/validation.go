// Package validation checks request inputs against their struct tags and
// turns the first failure into a caller-facing Validation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"expense-tracker-api/internal/apperr"
)

// ymdPattern is a shape check only. "2024-02-31" passes.
var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return ymdPattern.MatchString(fl.Field().String())
	})
	return v
}

// IsDate reports whether s has the YYYY-MM-DD shape.
func IsDate(s string) bool { return ymdPattern.MatchString(s) }

// IsMonth reports whether s has the YYYY-MM shape.
func IsMonth(s string) bool { return monthPattern.MatchString(s) }

// Struct validates v. It returns nil or an *apperr.Error of kind Validation.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperr.Wrap(apperr.Validation, message(fieldErrs[0]), err)
	}
	return apperr.Wrap(apperr.Validation, "Invalid input data", err)
}

// messages holds the wording for specific field and tag pairs.
var messages = map[string]string{
	"email.required":    "Invalid email address",
	"email.email":       "Invalid email address",
	"password.min":      "Password must be at least 8 characters",
	"password.required": "Password is required",
	"amount.gt":         "Amount must be positive",
	"description.min":   "Description is required",
	"description.max":   "Description too long",
	"category.min":      "Category is required",
	"date.ymd":          "Date must be in YYYY-MM-DD format",
	"startDate.ymd":     "startDate must be in YYYY-MM-DD format",
	"endDate.ymd":       "endDate must be in YYYY-MM-DD format",
	"minAmount.gt":      "minAmount must be positive",
	"maxAmount.gt":      "maxAmount must be positive",
	"name.min":          "Category name is required",
	"name.max":          "Category name too long",
	"pageSize.lte":      "pageSize must be at most 100",
	"sortBy.oneof":      "sortBy must be one of date, amount, createdAt",
	"sortOrder.oneof":   "sortOrder must be one of asc, desc",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte", "gt":
		return fmt.Sprintf("%s must be positive", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
