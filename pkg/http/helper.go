package http

import (
	"net/http"
	"strconv"
	"time"

	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
)

// DateLayout is the wire format for calendar dates. Check-in and check-out are
// dates, not instants; the day boundary is taken in UTC.
const DateLayout = "2006-01-02"

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate parses a required YYYY-MM-DD query parameter as a UTC date.
func ExtractDate(r *http.Request, name string) (time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return time.Time{}, apperrors.InvalidInput("missing required parameter: " + name)
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + name + " parameter, must be YYYY-MM-DD")
	}
	return d, nil
}
