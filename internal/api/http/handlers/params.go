package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// parseID coerces a loosely-typed body id (JSON number or numeric string)
// into an int64. Anything non-numeric or non-positive is invalid input.
func parseID(raw any) (int64, error) {
	switch v := raw.(type) {
	case float64:
		id := int64(v)
		if id > 0 && float64(id) == v {
			return id, nil
		}
	case json.Number:
		if id, err := v.Int64(); err == nil && id > 0 {
			return id, nil
		}
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, apperrors.NewValidationError("invalid id", nil)
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
