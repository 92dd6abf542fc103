// Package validation checks goal and contribution form input before any
// ledger mutation. Validators are pure; form-level functions collect every
// failing field instead of stopping at the first, so callers can annotate a
// whole form in one pass.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/models"
)

// Code identifies the kind of validation failure.
type Code string

// Validation failure codes.
const (
	CodeRequired    Code = "required"
	CodeTooLong     Code = "too_long"
	CodeOutOfRange  Code = "out_of_range"
	CodeInvalidDate Code = "invalid_date"
	CodeFutureDate  Code = "future_date"
)

// FieldError describes a single failing form field. Message is the text the
// presentation layer renders verbatim.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Name validates a goal name or contribution title. The value is trimmed
// before checking the length bounds; bounds are in characters, not bytes.
func Name(field, value string) *FieldError {
	trimmed := strings.TrimSpace(value)
	length := utf8.RuneCountInString(trimmed)

	if length < models.MinNameLength {
		return &FieldError{
			Field:   field,
			Code:    CodeRequired,
			Message: fmt.Sprintf("%s is required", capitalize(field)),
		}
	}
	if length > models.MaxNameLength {
		return &FieldError{
			Field:   field,
			Code:    CodeTooLong,
			Message: fmt.Sprintf("%s must be less than %d characters", capitalize(field), models.MaxNameLength),
		}
	}
	return nil
}

// Amount validates a monetary amount against the configured bounds. Zero and
// negative amounts are out of range; the minimum is a small positive epsilon.
func Amount(field string, amount decimal.Decimal) *FieldError {
	if amount.LessThan(models.MinAmount) {
		return &FieldError{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at least %s", capitalize(field), models.MinAmount),
		}
	}
	if amount.GreaterThan(models.MaxAmount) {
		return &FieldError{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be less than %s", capitalize(field), models.MaxAmount),
		}
	}
	return nil
}

// Date validates a contribution date. The zero value is unparseable input;
// dates strictly after the current time are rejected.
func Date(field string, date time.Time) *FieldError {
	if date.IsZero() {
		return &FieldError{
			Field:   field,
			Code:    CodeInvalidDate,
			Message: "Invalid date",
		}
	}
	if date.After(time.Now()) {
		return &FieldError{
			Field:   field,
			Code:    CodeFutureDate,
			Message: "Date cannot be in the future",
		}
	}
	return nil
}

// GoalForm validates all goal form fields, returning one entry per failing
// field in field order.
func GoalForm(name string, targetAmount decimal.Decimal) []FieldError {
	var errs []FieldError

	if err := Name("name", name); err != nil {
		errs = append(errs, *err)
	}
	if err := Amount("target amount", targetAmount); err != nil {
		errs = append(errs, *err)
	}
	return errs
}

// ContributionForm validates all contribution form fields, returning one
// entry per failing field in field order.
func ContributionForm(title string, amount decimal.Decimal, date time.Time) []FieldError {
	var errs []FieldError

	if err := Name("title", title); err != nil {
		errs = append(errs, *err)
	}
	if err := Amount("amount", amount); err != nil {
		errs = append(errs, *err)
	}
	if err := Date("date", date); err != nil {
		errs = append(errs, *err)
	}
	return errs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
