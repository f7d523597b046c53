package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation = errors.New("failed validation")
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrUpstreamFailure  = errors.New("upstream catalog failure")
)

// failedValidation wraps ErrFailedValidation with the field detail from a
// validation error map, in deterministic field order.
func failedValidation(errorMap map[string]string) error {
	fields := make([]string, 0, len(errorMap))
	for field := range errorMap {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%q %s", field, errorMap[field]))
	}
	return fmt.Errorf("%w: %s", ErrFailedValidation, strings.Join(details, "; "))
}
