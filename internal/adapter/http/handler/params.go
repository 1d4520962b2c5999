package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
)

// parseLimit accepts a positive whole number, including forms like "5.0".
func parseLimit(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: limit is required", domain.ErrInvalidInput)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: limit %q is not a number", domain.ErrInvalidInput, raw)
	}
	if f != math.Trunc(f) || f < 1 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: limit %q must be a positive whole number", domain.ErrInvalidInput, raw)
	}
	return int64(f), nil
}
