package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
)

// ValidationErrors keeps field failures in the order they were found. A field
// may fail more than one rule.
type ValidationErrors []apperror.FieldError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, apperror.FieldError{Path: field, Message: message})
}

// Err returns nil when nothing failed, otherwise a validation error carrying
// every field failure.
func (v ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperror.Validation("Validation failed", v...)
}

func ValidateRegister(name, email, password string) ValidationErrors {
	var errs ValidationErrors

	n := utf8.RuneCountInString(name)
	if n < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	}
	if n > 255 {
		errs.Add("name", "Name must be at most 255 characters")
	}

	validateEmail(email, &errs)
	if utf8.RuneCountInString(email) > 255 {
		errs.Add("email", "Email must be at most 255 characters")
	}

	validatePassword(password, &errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	var errs ValidationErrors

	validateEmail(email, &errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateCreateBlog(title, content string) ValidationErrors {
	var errs ValidationErrors

	n := utf8.RuneCountInString(title)
	if n < 3 {
		errs.Add("title", "Title must be at least 3 characters")
	}
	if n > 500 {
		errs.Add("title", "Title must be at most 500 characters")
	}

	if utf8.RuneCountInString(content) < 10 {
		errs.Add("content", "Content must be at least 10 characters")
	}

	return errs
}

// ValidateBlogID parses a path id, reporting a field failure when it is not a UUID.
func ValidateBlogID(id string) (uuid.UUID, ValidationErrors) {
	var errs ValidationErrors

	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		errs.Add("id", "Invalid blog ID format")
		return uuid.Nil, errs
	}

	return parsed, errs
}

func validateEmail(email string, errs *ValidationErrors) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || strings.ContainsAny(email, " \t") {
		errs.Add("email", "Invalid email format")
	}
}

func validatePassword(password string, errs *ValidationErrors) {
	n := utf8.RuneCountInString(password)
	if n < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}
	if n > 128 {
		errs.Add("password", "Password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}

	if !hasUpper {
		errs.Add("password", "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs.Add("password", "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs.Add("password", "Password must contain at least one number")
	}
}
