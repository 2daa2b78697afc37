// Package validation holds the pure field validators and the uniqueness
// checker used by the registration and mutation workflows. Each validator
// returns the full set of human-readable reasons for its input; an empty
// slice means the input passed.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/arzm/accountkeeper/internal/models"
)

var validate *validator.Validate

// phoneShapeRe matches a 10-digit phone number with optional separators,
// e.g. 8735551234, 873-555-1234, (873) 555 1234.
var phoneShapeRe = regexp.MustCompile(`^\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}$`)

// passwordSymbols is the punctuation set the strength policy accepts.
const passwordSymbols = "!@#$%^&*()_+-=[]{};:'\",<>./?"

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	must(validate.RegisterValidation("phoneshape", func(fl validator.FieldLevel) bool {
		return phoneShapeRe.MatchString(fl.Field().String())
	}))
	must(validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func isStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

type nameInput struct {
	First string `validate:"required,alpha,min=3,max=15"`
	Last  string `validate:"required,alpha,min=3,max=15"`
}

// NameReasons validates a first/last name pair. Both fields are checked in
// one pass; each field reports its first violated rule, and the two fields'
// reasons are accumulated together.
func NameReasons(first, last string) []string {
	err := validate.Struct(nameInput{First: first, Last: last})
	if err == nil {
		return nil
	}

	var reasons []string
	for _, fe := range err.(validator.ValidationErrors) {
		label := "first name"
		if fe.StructField() == "Last" {
			label = "last name"
		}
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, fmt.Sprintf("%s cannot be empty", label))
		case "alpha":
			reasons = append(reasons, fmt.Sprintf("%s should only contain letters", label))
		case "min":
			reasons = append(reasons, fmt.Sprintf("%s should be at least 3 characters long", label))
		case "max":
			reasons = append(reasons, fmt.Sprintf("%s should be at most 15 characters long", label))
		}
	}
	return reasons
}

// UsernameReasons validates a candidate username: non-empty, alphanumeric,
// length in [8,15]. Uniqueness is checked separately by the workflow.
func UsernameReasons(username string) []string {
	err := validate.Var(username, "required,alphanum,min=8,max=15")
	if err == nil {
		return nil
	}

	var reasons []string
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Tag() {
		case "required":
			reasons = append(reasons, "username cannot be empty")
		case "alphanum":
			reasons = append(reasons, "username should only contain letters and numbers")
		case "min":
			reasons = append(reasons, "username is too short (min 8 characters)")
		case "max":
			reasons = append(reasons, "username is too long (max 15 characters)")
		}
	}
	return reasons
}

// PhoneReasons validates a phone number. It short-circuits after the first
// failing rule: shape first, then the prefix allow-list.
func PhoneReasons(phone string, prefixes []string) []string {
	if err := validate.Var(phone, "required,phoneshape"); err != nil {
		return []string{"invalid phone number format"}
	}
	for _, p := range prefixes {
		if strings.HasPrefix(phone, p) {
			return nil
		}
	}
	return []string{fmt.Sprintf("phone number must start with %s", orList(prefixes))}
}

// PasswordReasons validates password strength: at least 8 characters with an
// uppercase letter, a lowercase letter, a digit, and a special character.
// The policy is reported as one combined reason.
func PasswordReasons(password string) []string {
	if err := validate.Var(password, "required,strongpwd"); err != nil {
		return []string{"password must have at least 8 characters, including uppercase, lowercase, a digit, and a special character"}
	}
	return nil
}

// EmailReasons validates an email address. It short-circuits after the first
// failing rule: local@domain.tld shape first, then the suffix allow-list.
func EmailReasons(email string, suffixes []string) []string {
	if err := validate.Var(email, "required,email"); err != nil {
		return []string{"invalid email format"}
	}
	lower := strings.ToLower(email)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return nil
		}
	}
	return []string{fmt.Sprintf("email should end with %s", orList(suffixes))}
}

// IsUnique reports whether no stored account already carries the candidate
// value in the named field. The comparison is case-insensitive. Supported
// fields are "username", "phone number", and "email"; any other field name
// trivially passes.
func IsUnique(field, candidate string, accounts []*models.Account) bool {
	return IsUniqueExcept(field, candidate, accounts, "")
}

// IsUniqueExcept is IsUnique with the named account excluded from the scan,
// so a profile edit can keep (or re-case) its own current value.
func IsUniqueExcept(field, candidate string, accounts []*models.Account, exceptUsername string) bool {
	for _, a := range accounts {
		if exceptUsername != "" && strings.EqualFold(a.Username, exceptUsername) {
			continue
		}
		var stored string
		switch field {
		case "username":
			stored = a.Username
		case "phone number":
			stored = a.PhoneNumber
		case "email":
			stored = a.Email
		default:
			return true
		}
		if strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(candidate)) {
			return false
		}
	}
	return true
}

func orList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
