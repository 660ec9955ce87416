package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Paging defaults and bounds. Search endpoints use the lower cap.
const (
	defaultLimit   = 10
	maxLimit       = 100
	maxSearchLimit = 50
)

// parsePaging reads skip and limit with defaults 0 and 10. skip must be
// >= 0 and limit within [1, max]. Malformed values are rejected here so the
// criteria and pager layers never see them.
func parsePaging(q url.Values, max int) (skip, limit int, err error) {
	skip, err = parseBoundedInt(q, "skip", 0, 0, -1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = parseBoundedInt(q, "limit", defaultLimit, 1, max)
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

// parseLimit reads a bare limit parameter for endpoints without skip.
func parseLimit(q url.Values, def, max int) (int, error) {
	return parseBoundedInt(q, "limit", def, 1, max)
}

// parseBoundedInt parses an optional integer parameter within [min, max];
// max < 0 means unbounded.
func parseBoundedInt(q url.Values, name string, def, min, max int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < min {
		return 0, fmt.Errorf("%s must be >= %d", name, min)
	}
	if max >= 0 && v > max {
		return 0, fmt.Errorf("%s must be <= %d", name, max)
	}
	return v, nil
}

// parseOptionalFloat parses an optional non-negative float parameter,
// returning nil when absent.
func parseOptionalFloat(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	if v < 0 {
		return nil, fmt.Errorf("%s must be >= 0", name)
	}
	return &v, nil
}

// parseOptionalUint parses an optional positive integer parameter,
// returning 0 when absent.
func parseOptionalUint(q url.Values, name string) (uint, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(v), nil
}

// parseOptionalDate parses an optional YYYY-MM-DD parameter, returning nil
// when absent.
func parseOptionalDate(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", name)
	}
	return &t, nil
}

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (uint, error) {
	v, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return uint(v), nil
}
