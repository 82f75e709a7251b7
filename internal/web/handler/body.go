package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/stockroom/stockroom/internal/web/apierror"
)

// Bind decodes the JSON body of c into out.
func Bind(c fiber.Ctx, out any) error {
	if err := c.Bind().JSON(out); err != nil {
		return apierror.Wrap(apierror.Malformed, err)
	}

	return nil
}

// Object decodes the JSON body of c, which must be an object. Numbers are
// kept as json.Number so they are stored without loss.
func Object(c fiber.Ctx) (map[string]any, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || body[0] != '{' {
		return nil, apierror.New(apierror.Malformed, "request body must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	fields := map[string]any{}
	if err := dec.Decode(&fields); err != nil {
		return nil, apierror.Wrap(apierror.Malformed, err)
	}

	return fields, nil
}

// ID parses the numeric id parameter. An id which is no number can not
// match a record, so it is reported as NotFound.
func ID(c fiber.Ctx, what string) (uint64, error) {
	raw := c.Params(IDParam)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierror.Newf(apierror.NotFound, "%s %q not found", what, raw)
	}

	return id, nil
}
