package httpapi

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var handlePattern = regexp.MustCompile(`^[0-9a-zA-Z_]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type signupRequest struct {
	Handle       string  `json:"handle"`
	Password     string  `json:"password"`
	DisplayName  *string `json:"displayName"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

func (r signupRequest) validate() []FieldError {
	var errs []FieldError
	errs = appendIf(errs, "handle", checkHandle(r.Handle))
	errs = appendIf(errs, "password", checkPassword(r.Password))
	if r.DisplayName != nil {
		if n := utf8.RuneCountInString(*r.DisplayName); n < 3 || n > 100 {
			errs = append(errs, FieldError{"displayName", "size must be between 3 and 100"})
		}
	}
	if r.Bio != nil && utf8.RuneCountInString(*r.Bio) > 160 {
		errs = append(errs, FieldError{"bio", "size must be between 0 and 160"})
	}
	if r.ProfileImage != nil && utf8.RuneCountInString(*r.ProfileImage) > 500 {
		errs = append(errs, FieldError{"profileImage", "size must be between 0 and 500"})
	}
	return errs
}

func (r loginRequest) validate() []FieldError {
	var errs []FieldError
	errs = appendIf(errs, "handle", checkHandle(r.Handle))
	errs = appendIf(errs, "password", checkPassword(r.Password))
	return errs
}

func appendIf(errs []FieldError, field, msg string) []FieldError {
	if msg == "" {
		return errs
	}
	return append(errs, FieldError{Field: field, Message: msg})
}

func checkHandle(h string) string {
	switch n := utf8.RuneCountInString(h); {
	case n == 0:
		return "Handle is required"
	case n > 50:
		return "size must be between 1 and 50"
	case !handlePattern.MatchString(h):
		return "Invalid handle"
	}
	return ""
}

func checkPassword(p string) string {
	n := utf8.RuneCountInString(p)
	if n == 0 {
		return "Password is required"
	}
	if n < 8 || n > 100 {
		return "size must be between 8 and 100"
	}
	var letter, digit bool
	for _, c := range p {
		switch {
		case c <= unicode.MaxASCII && unicode.IsLetter(c):
			letter = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			return "Invalid password"
		}
	}
	if !letter || !digit {
		return "Invalid password"
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
