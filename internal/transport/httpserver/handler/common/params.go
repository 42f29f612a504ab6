package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"care-app-go/internal/domain/apperr"
)

const dateLayout = "2006-01-02"

// ParseDateParam parses an optional YYYY-MM-DD value into UTC midnight.
func ParseDateParam(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, apperr.Invalid(field, "must be YYYY-MM-DD")
	}
	return &parsed, nil
}

func ParseDateRequired(field, value string) (time.Time, error) {
	parsed, err := ParseDateParam(field, &value)
	if err != nil {
		return time.Time{}, err
	}
	if parsed == nil {
		return time.Time{}, apperr.Invalid(field, "must be YYYY-MM-DD")
	}
	return *parsed, nil
}

func FormatDate(value time.Time) string {
	return value.UTC().Format(dateLayout)
}

func FormatDatePtr(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := FormatDate(*value)
	return &formatted
}

func ParseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}
