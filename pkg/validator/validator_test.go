package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
)

func messagesFor(errs ValidationErrors, field string) []string {
	var out []string
	for _, e := range errs {
		if e.Path == field {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestValidateRegister_Valid(t *testing.T) {
	errs := ValidateRegister("Ada", "ada@example.com", "Secret123")
	assert.False(t, errs.HasErrors())
	assert.NoError(t, errs.Err())
}

func TestValidateRegister_Fields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
		message  string
	}{
		{"short name", "A", "ada@example.com", "Secret123", "name", "Name must be at least 2 characters"},
		{"long name", strings.Repeat("a", 256), "ada@example.com", "Secret123", "name", "Name must be at most 255 characters"},
		{"bad email", "Ada", "not-an-email", "Secret123", "email", "Invalid email format"},
		{"display name email", "Ada", "Ada <ada@example.com>", "Secret123", "email", "Invalid email format"},
		{"long email", "Ada", strings.Repeat("a", 250) + "@x.com", "Secret123", "email", "Email must be at most 255 characters"},
		{"short password", "Ada", "ada@example.com", "Se1", "password", "Password must be at least 8 characters"},
		{"long password", "Ada", "ada@example.com", "Aa1" + strings.Repeat("x", 126), "password", "Password must be at most 128 characters"},
		{"no upper", "Ada", "ada@example.com", "secret123", "password", "Password must contain at least one uppercase letter"},
		{"no lower", "Ada", "ada@example.com", "SECRET123", "password", "Password must contain at least one lowercase letter"},
		{"no digit", "Ada", "ada@example.com", "SecretOnly", "password", "Password must contain at least one number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.username, tt.email, tt.password)
			require.True(t, errs.HasErrors())
			assert.Contains(t, messagesFor(errs, tt.field), tt.message)
		})
	}
}

func TestValidateRegister_ReportsEveryPasswordRule(t *testing.T) {
	errs := ValidateRegister("Ada", "ada@example.com", "")
	assert.Len(t, messagesFor(errs, "password"), 4)
}

func TestValidateLogin(t *testing.T) {
	assert.False(t, ValidateLogin("ada@example.com", "x").HasErrors())

	errs := ValidateLogin("nope", "")
	assert.Equal(t, []string{"Invalid email format"}, messagesFor(errs, "email"))
	assert.Equal(t, []string{"Password is required"}, messagesFor(errs, "password"))
}

func TestValidateCreateBlog(t *testing.T) {
	assert.False(t, ValidateCreateBlog("Hello", "Hello, world!").HasErrors())

	errs := ValidateCreateBlog("Hi", "short")
	assert.Equal(t, []string{"Title must be at least 3 characters"}, messagesFor(errs, "title"))
	assert.Equal(t, []string{"Content must be at least 10 characters"}, messagesFor(errs, "content"))

	errs = ValidateCreateBlog(strings.Repeat("t", 501), "long enough content")
	assert.Equal(t, []string{"Title must be at most 500 characters"}, messagesFor(errs, "title"))
}

func TestValidateBlogID(t *testing.T) {
	id, errs := ValidateBlogID("6f1c2a8e-8d3b-4a53-9b7e-2f4f0c1d9e10")
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "6f1c2a8e-8d3b-4a53-9b7e-2f4f0c1d9e10", id.String())

	_, errs = ValidateBlogID("123")
	assert.Equal(t, []string{"Invalid blog ID format"}, messagesFor(errs, "id"))

	_, errs = ValidateBlogID("urn:uuid:6f1c2a8e-8d3b-4a53-9b7e-2f4f0c1d9e10")
	assert.True(t, errs.HasErrors())
}

func TestErr_IsValidationKind(t *testing.T) {
	err := ValidateCreateBlog("", "").Err()
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Len(t, appErr.Fields, 2)
}
