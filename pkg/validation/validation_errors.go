package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps form field names to user-facing labels
var FieldLabels = map[string]string{
	// Application form
	"candidate_name":    "Full name",
	"candidate_email":   "Email",
	"phone_number":      "Phone number",
	"candidate_message": "Cover letter",

	// Company auth
	"email":          "Email",
	"password":       "Password",
	"name":           "Company name",
	"location":       "Location",
	"website":        "Website",
	"phone":          "Phone",
	"description":    "Description",
	"founded_year":   "Founded year",
	"employee_count": "Employee count",

	// Job posting
	"title":            "Job title",
	"category":         "Category",
	"salary_min":       "Minimum salary",
	"salary_max":       "Maximum salary",
	"job_type":         "Job type",
	"experience_level": "Experience level",

	// Contact
	"subject": "Subject",
	"message": "Message",
}

// MsgRequiredFields is shown whenever any required field is missing.
const MsgRequiredFields = "Please fill in all required fields"

// MsgInvalidEmail is shown for a malformed email address.
const MsgInvalidEmail = "Please enter a valid email address"

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FirstMessage is the one message a form shows. Missing required fields win
// over every other problem.
func FirstMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return MsgRequiredFields
		}
	}
	return formatSingleError(validationErrors[0])
}

func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return MsgInvalidEmail
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' - /", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	case "max_current_year":
		return fmt.Sprintf("%s cannot be in the future", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatSnakeCase(fieldName)
}

// formatSnakeCase turns "salary_min" into "Salary min"
func formatSnakeCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
