package serializers

import (
	"strconv"
	"strings"

	apperrors "github.com/welldanyogia/recipe-api-backend/internal/errors"
)

// ParseIDList parses a comma separated list of IDs such as "1,2,3".
// An empty value yields nil.
func ParseIDList(param, value string) ([]uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			return nil, apperrors.NewValidationError(param, param+" must be a comma separated list of IDs")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// ParseFlag reads a boolean query flag. Integers are truthy when non-zero;
// "true" and "false" are also accepted. An empty value is false.
func ParseFlag(param, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n != 0, nil
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	return false, apperrors.NewValidationError(param, param+" must be 0 or 1")
}

// ParseID parses a path ID parameter
func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("id", "invalid ID")
	}
	return uint(id), nil
}
