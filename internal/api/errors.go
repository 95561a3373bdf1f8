// Package api holds the HTTP handlers. Handlers parse and validate input,
// call a service, and render either the result or the uniform error body.
package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/models"
)

var validate = validator.New()

// respondError renders any error as the uniform body. Internal causes are
// logged here and never leave the process.
func respondError(c *fiber.Ctx, err error) error {
	appErr := models.SanitizeError(err)
	if appErr.Kind == models.ErrorKindInternal {
		fiberlog.Errorf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(appErr.StatusCode()).JSON(appErr.Body())
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return models.NewBadRequestError("", err)
	}
	if err := validate.Struct(req); err != nil {
		return models.NewBadRequestError("", err)
	}
	return nil
}

// requireParam returns a path parameter or a bad request error.
func requireParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		return "", models.NewBadRequestError(name+" is required", nil)
	}
	return value, nil
}
