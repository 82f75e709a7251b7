package web

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/stockroom/stockroom/internal/web/apierror"
)

// bodyLimit returns the larger of both limits, fiber enforces it before
// any handler runs.
func bodyLimit(jsonLimit, uploadLimit int) int {
	return max(jsonLimit, uploadLimit)
}

// bodyParser rejects bodies above limit unless they are multipart uploads,
// and requests which announce a JSON body that does not parse.
func bodyParser(limit int) fiber.Handler {
	return func(c fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 {
			return c.Next()
		}

		ct := strings.ToLower(c.Get(fiber.HeaderContentType))

		if strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
			return c.Next()
		}

		if len(body) > limit {
			return fiber.ErrRequestEntityTooLarge
		}

		if !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) && !strings.Contains(ct, "+json") {
			return c.Next()
		}

		if err := json.Unmarshal(body, new(json.RawMessage)); err != nil {
			return apierror.Wrap(apierror.Malformed, err)
		}

		return c.Next()
	}
}
