package application

import (
	"fmt"
	"strings"

	"daybook/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "listID" -> "list ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidateDate checks that value is a YYYY-MM-DD calendar date
func ValidateDate(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if _, err := domain.ParseDate(value, nil); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected YYYY-MM-DD, got: %s", value),
		}
	}
	return nil
}

// ValidateTime checks that value is empty or HH:MM within 00:00-23:59
func ValidateTime(fieldName, value string) error {
	if value == "" || domain.ValidTimeOfDay(value) {
		return nil
	}
	return &ValidationError{
		Field:   fieldName,
		Message: fmt.Sprintf("expected HH:MM between 00:00 and 23:59, got: %s", value),
	}
}

// ValidateID checks that a server assigned identifier was supplied
func ValidateID(fieldName string, id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "listID" -> "list ID")
func formatFieldName(fieldName string) string {
	// Handle common patterns directly
	replacements := map[string]string{
		"listID":  "list ID",
		"itemID":  "item ID",
		"entryID": "entry ID",
		"photoID": "photo ID",
		"userID":  "user ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}
