package utils

import (
	"sort"
	"strings"
)

// ValidationError collects per-field messages from local input checks.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add keeps the first message recorded for a field.
func (v *ValidationError) Add(field, message string) {
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

// Err returns v when any field failed, otherwise nil.
func (v *ValidationError) Err() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
