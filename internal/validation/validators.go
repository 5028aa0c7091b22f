// Package validation holds form validators that run before any backend call.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/megabox/megabox-web/internal/errors"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// RequiredRange validates that a field is present and between minLen and maxLen runes.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		n := utf8.RuneCountInString(v)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters.", fieldName, minLen, maxLen)
		}
		return ""
	}
}

// Email validates a single bare address (no display name).
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || !strings.Contains(v[strings.LastIndex(v, "@"):], ".") {
			return "Enter a valid email address."
		}
		return ""
	}
}

// Password validates presence and a minimum length. Whitespace is significant.
func Password(fieldName string, minLen int) Validator {
	return func(v string) string {
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) < minLen {
			return fmt.Sprintf("%s must be at least %d characters.", fieldName, minLen)
		}
		return ""
	}
}

// Matches validates that the value equals other.
func Matches(other, msg string) Validator {
	return func(v string) string {
		if v != other {
			return msg
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options (case-insensitive).
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.ToUpper(strings.TrimSpace(v))
		for _, opt := range options {
			if v == strings.ToUpper(opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// Pattern validates that a non-empty field matches the provided regular expression.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// OneTimeCode validates a six digit confirmation code.
func OneTimeCode(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if !otpPattern.MatchString(v) {
			return fieldName + " must be 6 digits."
		}
		return ""
	}
}

// MaxAmount caps a single monetary form value.
const MaxAmount = 1_000_000_000

var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// PositiveAmount validates a plain decimal amount greater than zero and at most MaxAmount.
// Exponents, hex floats, NaN and Inf are rejected.
func PositiveAmount(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if !decimalPattern.MatchString(v) {
			return fieldName + " must be a number."
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fieldName + " must be a number."
		}
		if f <= 0 {
			return fieldName + " must be greater than zero."
		}
		if f > MaxAmount {
			return fmt.Sprintf("%s must be at most %d.", fieldName, MaxAmount)
		}
		return ""
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.add(field, err)
			break
		}
	}
	return fv
}

// Check records msg for field when ok is false.
func (fv *FieldValidator) Check(field string, ok bool, msg string) *FieldValidator {
	if !ok {
		fv.add(field, msg)
	}
	return fv
}

func (fv *FieldValidator) add(field, msg string) {
	if _, exists := fv.errors[field]; exists {
		return
	}
	fv.errors[field] = msg
	fv.order = append(fv.order, field)
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Err returns the first recorded failure as a validation AppError, or nil.
func (fv *FieldValidator) Err() error {
	if len(fv.order) == 0 {
		return nil
	}
	field := fv.order[0]
	return apperrors.ValidationField(field, fv.errors[field])
}
