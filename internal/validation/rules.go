// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	"github.com/allisson/credvault/internal/authz"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoSpaces rejects strings holding any whitespace, including inside the value.
var NoSpaces = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.IndexFunc(s, unicode.IsSpace) < 0
	},
	validation.NewError("validation_no_spaces", "must not contain spaces"),
)

// NoControlChars rejects strings holding control characters such as newlines or NUL.
var NoControlChars = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.IndexFunc(s, unicode.IsControl) < 0
	},
	validation.NewError("validation_no_control_chars", "must not contain control characters"),
)

// RoleName validates that a string names one of the user roles.
var RoleName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := authz.ParseRole(s)
		return err == nil
	},
	validation.NewError("validation_role", "must be one of normal, management, admin"),
)

// Ref validates that a string is a canonical entity identifier.
var Ref = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := authz.ParseRef(s)
		return err == nil
	},
	validation.NewError("validation_ref", "must be a valid identifier"),
)
