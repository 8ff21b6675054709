package handler

import (
	"net/http"
	"time"
)

const monthLayout = "2006-01"

// parseMonthQuery reads an optional "YYYY-MM" query value.
func parseMonthQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(monthLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
