package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitLeadInput checks the submission shape before anything
// touches the store. Presence only: email format, deliverability etc. are
// out of scope here.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}

	if input.Inputs.IsEmpty() {
		errors = append(errors, ValidationError{"inputs", "at least one calculator input is required"})
	}

	if input.Results.IsEmpty() {
		errors = append(errors, ValidationError{"results", "at least one computed result is required"})
	}

	return errors
}
