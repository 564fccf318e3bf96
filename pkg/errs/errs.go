package errs

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field string `json:"param"`
	Value string `json:"value,omitempty"`
	Msg   string `json:"msg"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// ValidationErrors is the full list of rejected fields for one operation.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

func IsValidation(err error) bool {
	var list ValidationErrors
	if errors.As(err, &list) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

type Validator struct {
	field string
	value *string
}

func NewValidator(field string, value *string) *Validator {
	return &Validator{field: field, value: value}
}

func (rv *Validator) Required() *ValidationError {
	if rv.value == nil {
		return &ValidationError{Field: rv.field, Msg: "is required"}
	}

	return nil
}

func (rv *Validator) NotBlank() *ValidationError {
	if utf8.RuneCountInString(strings.TrimSpace(*rv.value)) == 0 {
		return &ValidationError{Field: rv.field, Value: *rv.value, Msg: "cannot be blank"}
	}

	return nil
}

func (rv *Validator) MaxLength(max int) *ValidationError {
	lenStr := utf8.RuneCountInString(*rv.value)
	if lenStr > max {
		return &ValidationError{Field: rv.field, Value: *rv.value,
			Msg: fmt.Sprintf("must be at most %d characters long", max)}
	}

	return nil
}

func (rv *Validator) Custom(validate func(string) bool, msg string) *ValidationError {
	if !validate(*rv.value) {
		return &ValidationError{Field: rv.field, Value: *rv.value, Msg: msg}
	}

	return nil
}

// Merge collects the non-nil results of several checks into one error.
// Returns nil when every check passed.
func Merge(validations ...*ValidationError) error {
	result := make(ValidationErrors, 0, 2)

	for _, err := range validations {
		if err == nil {
			continue
		}

		result = append(result, err)
	}

	if len(result) == 0 {
		return nil
	}

	return result
}
