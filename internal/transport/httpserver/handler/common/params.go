package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func parseIDParam(r *http.Request, name string) (int64, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func parseInt64Query(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return nil, fmt.Errorf("invalid id")
	}
	return &parsed, nil
}

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseMonthRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("month is required")
	}
	return time.Parse(monthLayout, value)
}

func ParseIDParam(r *http.Request, name string) (int64, error) {
	return parseIDParam(r, name)
}

func ParseInt64Query(value string) (*int64, error) {
	return parseInt64Query(value)
}

func ParseDateRequired(value string) (time.Time, error) {
	return parseDateRequired(value)
}

func ParseDateParam(value string) (*time.Time, error) {
	return parseDateParam(value)
}

func ParseMonthRequired(value string) (time.Time, error) {
	return parseMonthRequired(value)
}

func FormatDate(value time.Time) string {
	return value.Format(dateLayout)
}
